package services

import (
	"testing"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() UserService {
	return NewUserService(repositories.NewUserRepository())
}

func TestGetUserSanitizes(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService()
	user := seedUser(t, db, "plain@example.com", nil)

	got, err := svc.GetUser(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.Password)

	_, err = svc.GetUser(db, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService()
	user := seedUser(t, db, "partial@example.com", func(u *models.User) {
		u.FirstName = "Old"
		u.Department = "Support"
	})

	first := "New"
	img := "https://cdn.example.com/p.jpg"
	got, err := svc.UpdateProfile(db, user.ID, &dto.UpdateUserRequest{
		AccountType: string(models.AccountTypePersonal),
		FirstName:   &first,
	}, &img)
	require.NoError(t, err)

	assert.Equal(t, "New", got.FirstName)
	assert.Equal(t, "Support", got.Department)
	assert.Equal(t, img, got.ProfileImage)
}

func TestChangePasswordChecksOld(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService()
	user := seedUser(t, db, "pw@example.com", nil)

	err := svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "not the password",
		NewPassword: "replacement1",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "correct horse",
		NewPassword: "replacement1",
	}))

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.True(t, auth.CheckPasswordHash("replacement1", updated.Password))
}

func TestSetTwoStepVerificationRejectsNoop(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService()
	user := seedUser(t, db, "2fa@example.com", nil)

	require.NoError(t, svc.SetTwoStepVerification(db, user.ID, true))

	err := svc.SetTwoStepVerification(db, user.ID, true)
	require.Error(t, err)

	require.NoError(t, svc.SetTwoStepVerification(db, user.ID, false))
}

func TestSoftDeleteKeepsRow(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService()
	user := seedUser(t, db, "bye@example.com", nil)

	require.NoError(t, svc.SoftDelete(db, user.ID))

	var kept models.User
	require.NoError(t, db.First(&kept, user.ID).Error)
	assert.True(t, kept.IsDeleted)
	assert.False(t, kept.IsActivated)
	assert.Equal(t, models.UserStatusInactive, kept.Status)

	err := svc.SoftDelete(db, user.ID)
	require.Error(t, err)
}
