package services

import (
	"bytes"
	"strings"
	"testing"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newCircleService() CircleService {
	return NewCircleService(
		testConfig(),
		repositories.NewCircleRepository(),
		repositories.NewUserRepository(),
	)
}

func memberIDs(t *testing.T, db *gorm.DB, circleID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&models.CircleMember{}).
		Where("circle_id = ?", circleID).Pluck("user_id", &ids).Error)
	return ids
}

// rosterFile builds an uploaded spreadsheet with a header row and one
// email per row.
func rosterFile(t *testing.T, emails []string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Email"))
	for i, email := range emails {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, email))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestCreateCircleIncludesOwner(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner@example.com", nil)
	member := seedUser(t, db, "member@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{
		CircleName:   "Wellbeing crew",
		MemberEmails: "member@example.com, unknown@example.com",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.CircleStatusActive, circle.CircleStatus)
	assert.True(t, strings.HasPrefix(circle.CircleShareLink, "https://empylo.test/circle/"))
	assert.Len(t, strings.TrimPrefix(circle.CircleShareLink, "https://empylo.test/circle/"), 12)

	ids := memberIDs(t, db, circle.ID)
	assert.ElementsMatch(t, []uint{owner.ID, member.ID}, ids)
	assert.Equal(t, 2, circle.CircleNos)
}

func TestCreateCircleCompanyOwnerNotMember(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "company@example.com", func(u *models.User) {
		u.AccountType = models.AccountTypeCompany
	})
	member := seedUser(t, db, "staff@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{
		CircleName:   "Team circle",
		MemberEmails: "staff@example.com",
	}, nil)
	require.NoError(t, err)

	ids := memberIDs(t, db, circle.ID)
	assert.ElementsMatch(t, []uint{member.ID}, ids)
}

func TestAddMemberConflicts(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner2@example.com", nil)
	other := seedUser(t, db, "other@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "c"}, nil)
	require.NoError(t, err)

	_, err = svc.AddMember(db, &dto.AddCircleMemberRequest{UserID: other.ID, CircleID: circle.ID})
	require.NoError(t, err)

	_, err = svc.AddMember(db, &dto.AddCircleMemberRequest{UserID: other.ID, CircleID: circle.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCircleMember)

	_, err = svc.AddMember(db, &dto.AddCircleMemberRequest{UserID: 9999, CircleID: circle.ID})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = svc.AddMember(db, &dto.AddCircleMemberRequest{UserID: other.ID, CircleID: 9999})
	assert.ErrorIs(t, err, apperrors.ErrCircleNotFound)
}

func TestUpdateCircleAppendOnlyAndRotatesShareLink(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner3@example.com", nil)
	extra := seedUser(t, db, "extra@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "before"}, nil)
	require.NoError(t, err)
	originalLink := circle.CircleShareLink

	name := "after"
	emails := "extra@example.com"
	updated, err := svc.UpdateCircle(db, circle.ID, &dto.UpdateCircleRequest{
		CircleName:   &name,
		MemberEmails: &emails,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "after", updated.CircleName)
	assert.NotEqual(t, originalLink, updated.CircleShareLink)

	// The submitted list omitted the owner; membership only grows.
	ids := memberIDs(t, db, circle.ID)
	assert.ElementsMatch(t, []uint{owner.ID, extra.ID}, ids)
	assert.Equal(t, 2, updated.CircleNos)
}

func TestJoinByShareLink(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner4@example.com", nil)
	seedUser(t, db, "joiner@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "open"}, nil)
	require.NoError(t, err)

	result, err := svc.JoinByShareLink(db, circle.CircleShareLink, "joiner@example.com")
	require.NoError(t, err)
	assert.Equal(t, circle.ID, result.Circle.ID)
	assert.Len(t, result.Members, 2)

	_, err = svc.JoinByShareLink(db, circle.CircleShareLink, "joiner@example.com")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCircleMember)

	_, err = svc.JoinByShareLink(db, "https://empylo.test/circle/doesnotexist", "joiner@example.com")
	assert.ErrorIs(t, err, apperrors.ErrCircleNotFound)

	_, err = svc.JoinByShareLink(db, circle.CircleShareLink, "stranger@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSetCircleStatusRejectsNoop(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner5@example.com", nil)
	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "s"}, nil)
	require.NoError(t, err)

	err = svc.SetCircleStatus(db, circle.ID, models.CircleStatusActive)
	require.Error(t, err)

	require.NoError(t, svc.SetCircleStatus(db, circle.ID, models.CircleStatusInactive))
	require.NoError(t, svc.SetCircleStatus(db, circle.ID, models.CircleStatusActive))
}

func TestBatchImportStrict(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner6@example.com", nil)
	seedUser(t, db, "alpha@example.com", nil)
	seedUser(t, db, "beta@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "imp"}, nil)
	require.NoError(t, err)

	file := rosterFile(t, []string{"alpha@example.com", "beta@example.com", "ghost@example.com"})
	result, err := svc.BatchImport(db, circle.ID, file, "roster.xlsx", dto.ImportStrict)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.MembersAdded)
	assert.Equal(t, 0, result.UsersCreated)
	assert.Equal(t, []string{"ghost@example.com"}, result.Skipped)
}

func TestBatchImportErrorOnMissingIsAtomic(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner7@example.com", nil)
	seedUser(t, db, "gamma@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "atomic"}, nil)
	require.NoError(t, err)
	before := len(memberIDs(t, db, circle.ID))

	file := rosterFile(t, []string{"gamma@example.com", "ghost@example.com"})
	_, err = svc.BatchImport(db, circle.ID, file, "roster.xlsx", dto.ImportErrorOnMissing)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"ghost@example.com"}, details["unregisteredEmails"])

	// Nothing was added, including the resolvable email.
	assert.Len(t, memberIDs(t, db, circle.ID), before)
}

func TestBatchImportAutoProvision(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner8@example.com", nil)
	seedUser(t, db, "delta@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "prov"}, nil)
	require.NoError(t, err)

	file := rosterFile(t, []string{"delta@example.com", "fresh@example.com"})
	result, err := svc.BatchImport(db, circle.ID, file, "roster.xlsx", dto.ImportAutoProvision)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.MembersAdded)
	assert.Equal(t, 1, result.UsersCreated)

	var created models.User
	require.NoError(t, db.Where("email = ?", "fresh@example.com").First(&created).Error)
	assert.Equal(t, models.AccountTypeClientUser, created.AccountType)
	assert.True(t, created.IsActivated)
	assert.NotEqual(t, "password", created.Password)
}

func TestBatchImportUnsupportedFile(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner9@example.com", nil)
	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "bad"}, nil)
	require.NoError(t, err)

	_, err = svc.BatchImport(db, circle.ID, bytes.NewReader([]byte("email\n")), "roster.csv", dto.ImportStrict)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedSpreadsheet)
}

func TestDeleteCircleRemovesMembers(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "owner10@example.com", nil)
	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "gone"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCircle(db, circle.ID))
	assert.Empty(t, memberIDs(t, db, circle.ID))

	_, err = svc.GetCircle(db, circle.ID)
	assert.ErrorIs(t, err, apperrors.ErrCircleNotFound)
}

func TestRemovedMemberCanRejoin(t *testing.T) {
	db := openTestDB(t)
	svc := newCircleService()

	owner := seedUser(t, db, "rejown@example.com", nil)
	member := seedUser(t, db, "rejoin@example.com", nil)

	circle, err := svc.CreateCircle(db, owner.ID, &dto.CreateCircleRequest{CircleName: "revolving"}, nil)
	require.NoError(t, err)

	_, err = svc.AddMember(db, &dto.AddCircleMemberRequest{UserID: member.ID, CircleID: circle.ID})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(db, circle.ID, member.ID))

	// Removal drops the row entirely, so re-adding does not trip the
	// composite unique index.
	_, err = svc.AddMember(db, &dto.AddCircleMemberRequest{UserID: member.ID, CircleID: circle.ID})
	require.NoError(t, err)

	members, err := svc.GetCircleMembers(db, circle.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{owner.ID, member.ID}, memberIDs(t, db, circle.ID))
	assert.Len(t, members, 2)
}
