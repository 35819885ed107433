package services

import (
	"regexp"
	"testing"
	"time"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTokenService() TokenService {
	return NewTokenService(repositories.NewTokenRepository())
}

func TestIssueOTPShape(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "otp@example.com", nil)

	token, err := svc.Issue(db, user, models.OperationEmailVerification, 10*time.Minute)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{3}$`), token.Token)
	assert.Equal(t, models.OperationEmailVerification, token.OperationType)
	assert.Equal(t, user.ID, token.UserID)
	assert.False(t, token.IsUsed)
}

func TestIssueResetTokenShape(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "reset@example.com", nil)

	token, err := svc.Issue(db, user, models.OperationPasswordReset, 10*time.Minute)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), token.Token)
}

func TestValidateAndConsume(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "lifecycle@example.com", nil)

	issued, err := svc.Issue(db, user, models.OperationEmailVerification, 10*time.Minute)
	require.NoError(t, err)

	token, err := svc.Validate(db, issued.Token, models.OperationEmailVerification)
	require.NoError(t, err)
	require.NoError(t, svc.Consume(db, token))

	// Second use is rejected as used, not as unknown.
	_, err = svc.Validate(db, issued.Token, models.OperationEmailVerification)
	assert.ErrorIs(t, err, apperrors.ErrTokenUsed)
}

func TestValidateWrongOperation(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "op@example.com", nil)

	issued, err := svc.Issue(db, user, models.OperationEmailVerification, 10*time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(db, issued.Token, models.OperationTwoStepVerification)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalidOrExpired)
}

func TestValidateExpired(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "expired@example.com", nil)

	issued, err := svc.Issue(db, user, models.OperationEmailVerification, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(db, issued.Token, models.OperationEmailVerification)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalidOrExpired)
}

func TestResendReplacesPending(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "resend@example.com", nil)

	first, err := svc.Issue(db, user, models.OperationEmailVerification, 10*time.Minute)
	require.NoError(t, err)

	second, err := svc.Resend(db, user, models.OperationEmailVerification, 10*time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(db, first.Token, models.OperationEmailVerification)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalidOrExpired)

	_, err = svc.Validate(db, second.Token, models.OperationEmailVerification)
	assert.NoError(t, err)
}

func TestExpireStaleSweep(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	repo := repositories.NewTokenRepository()
	user := seedUser(t, db, "sweep@example.com", nil)

	_, err := svc.Issue(db, user, models.OperationEmailVerification, -time.Minute)
	require.NoError(t, err)
	_, err = svc.Issue(db, user, models.OperationPasswordReset, 10*time.Minute)
	require.NoError(t, err)

	swept, err := repo.ExpireStale(db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)
}

func TestIssueRetriesOnValueCollision(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "collide@example.com", nil)
	other := seedUser(t, db, "holder@example.com", nil)

	// A live token already holds the value the generator will produce
	// first.
	taken := &models.TokenManager{
		Token:         "4242",
		OperationType: models.OperationEmailVerification,
		ExpiryDate:    time.Now().Add(10 * time.Minute),
		UserID:        other.ID,
	}
	require.NoError(t, db.Create(taken).Error)

	original := generateValue
	t.Cleanup(func() { generateValue = original })
	values := []string{"4242", "7777"}
	generateValue = func(models.OperationType) (string, error) {
		v := values[0]
		if len(values) > 1 {
			values = values[1:]
		}
		return v, nil
	}

	// Issue runs inside a caller-owned transaction, as in the signup
	// and login flows. The collision must not poison that transaction.
	var issued *models.TokenManager
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		issued, err = svc.Issue(tx, user, models.OperationEmailVerification, 10*time.Minute)
		if err != nil {
			return err
		}
		// The surrounding transaction is still usable afterwards.
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("two_step_verification", true).Error
	})
	require.NoError(t, err)
	assert.Equal(t, "7777", issued.Token)

	var count int64
	require.NoError(t, db.Model(&models.TokenManager{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestIssueGivesUpAfterRepeatedCollisions(t *testing.T) {
	db := openTestDB(t)
	svc := newTokenService()
	user := seedUser(t, db, "exhausted@example.com", nil)
	other := seedUser(t, db, "squatter@example.com", nil)

	taken := &models.TokenManager{
		Token:         "3131",
		OperationType: models.OperationEmailVerification,
		ExpiryDate:    time.Now().Add(10 * time.Minute),
		UserID:        other.ID,
	}
	require.NoError(t, db.Create(taken).Error)

	original := generateValue
	t.Cleanup(func() { generateValue = original })
	generateValue = func(models.OperationType) (string, error) {
		return "3131", nil
	}

	_, err := svc.Issue(db, user, models.OperationEmailVerification, 10*time.Minute)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
}
