package services

import (
	"testing"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCompanyService() CompanyService {
	return NewCompanyService(repositories.NewUserRepository())
}

func seedCompany(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return seedUser(t, db, email, func(u *models.User) {
		u.AccountType = models.AccountTypeCompany
	})
}

func TestAddCompanyMember(t *testing.T) {
	db := openTestDB(t)
	svc := newCompanyService()

	company := seedCompany(t, db, "acme@example.com")
	seedUser(t, db, "worker@example.com", nil)

	member, err := svc.AddMember(db, company.ID, &dto.AddCompanyMemberRequest{Email: "worker@example.com"})
	require.NoError(t, err)
	require.NotNil(t, member.CompanyID)
	assert.Equal(t, company.ID, *member.CompanyID)
	assert.Empty(t, member.Password)
}

func TestAddCompanyMemberRejections(t *testing.T) {
	db := openTestDB(t)
	svc := newCompanyService()

	company := seedCompany(t, db, "corp@example.com")
	otherCompany := seedCompany(t, db, "rival@example.com")
	personal := seedUser(t, db, "solo@example.com", nil)
	seedUser(t, db, "poached@example.com", nil)

	// Only company accounts manage rosters.
	_, err := svc.AddMember(db, personal.ID, &dto.AddCompanyMemberRequest{Email: "poached@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrNotCompanyAccount)

	// A company cannot roster itself.
	_, err = svc.AddMember(db, company.ID, &dto.AddCompanyMemberRequest{Email: "corp@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrCannotAddSelf)

	_, err = svc.AddMember(db, company.ID, &dto.AddCompanyMemberRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Membership in any company blocks a second one.
	_, err = svc.AddMember(db, otherCompany.ID, &dto.AddCompanyMemberRequest{Email: "poached@example.com"})
	require.NoError(t, err)
	_, err = svc.AddMember(db, company.ID, &dto.AddCompanyMemberRequest{Email: "poached@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInCompany)
}

func TestCompanyRosterLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := newCompanyService()

	company := seedCompany(t, db, "team@example.com")
	worker := seedUser(t, db, "roster@example.com", nil)

	_, err := svc.AddMember(db, company.ID, &dto.AddCompanyMemberRequest{Email: "roster@example.com"})
	require.NoError(t, err)

	members, err := svc.ListMembers(db, company.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, worker.ID, members[0].ID)

	dept := "Engineering"
	updated, err := svc.UpdateMember(db, company.ID, worker.ID, &dto.UpdateCompanyMemberRequest{
		Department: &dept,
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Department)

	require.NoError(t, svc.RemoveMember(db, company.ID, worker.ID))

	// The account survives removal, detached from the roster.
	var kept models.User
	require.NoError(t, db.First(&kept, worker.ID).Error)
	assert.Nil(t, kept.CompanyID)
	assert.False(t, kept.IsDeleted)

	_, err = svc.GetMember(db, company.ID, worker.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
