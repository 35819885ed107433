package services

import (
	"time"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TokenService owns the OTP/reset token lifecycle: issue, resend,
// validate, consume. Every active (value, operation) pair identifies
// exactly one pending operation; the store's partial unique index
// enforces that.
type TokenService interface {
	Issue(db *gorm.DB, user *models.User, op models.OperationType, ttl time.Duration) (*models.TokenManager, error)
	Resend(db *gorm.DB, user *models.User, op models.OperationType, ttl time.Duration) (*models.TokenManager, error)
	Validate(db *gorm.DB, value string, op models.OperationType) (*models.TokenManager, error)
	Consume(db *gorm.DB, token *models.TokenManager) error
}

type TokenServiceImpl struct {
	tokenRepo repositories.TokenRepository
}

func NewTokenService(tokenRepo repositories.TokenRepository) TokenService {
	return &TokenServiceImpl{tokenRepo: tokenRepo}
}

// generateValue picks the token shape per operation: 4-digit codes for
// mailed OTPs, a 32-byte hex token for password reset. Swappable in
// tests to force value collisions.
var generateValue = func(op models.OperationType) (string, error) {
	if op == models.OperationPasswordReset {
		return randomHex(32)
	}
	return generateOTP()
}

// Issue persists a fresh token for the user. Value collisions against a
// live token of the same operation hit the unique index; retry with a
// new value. Each insert runs in a nested transaction so that on
// postgres the unique violation rolls back to a savepoint instead of
// aborting the caller's transaction.
func (s *TokenServiceImpl) Issue(db *gorm.DB, user *models.User, op models.OperationType, ttl time.Duration) (*models.TokenManager, error) {
	const maxAttempts = 5

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, err := generateValue(op)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		token := &models.TokenManager{
			Token:         value,
			OperationType: op,
			ExpiryDate:    time.Now().Add(ttl),
			UserID:        user.ID,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			return s.tokenRepo.Create(tx, token)
		})
		if err == nil {
			return token, nil
		}
		if !repositories.IsDuplicateKey(err) {
			return nil, apperrors.InternalError(err)
		}
		lastErr = err
	}

	return nil, apperrors.InternalError(lastErr)
}

// Resend drops any pending tokens of this operation for the user and
// issues a replacement.
func (s *TokenServiceImpl) Resend(db *gorm.DB, user *models.User, op models.OperationType, ttl time.Duration) (*models.TokenManager, error) {
	if err := s.tokenRepo.DeleteForUser(db, user.ID, op); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Issue(db, user, op, ttl)
}

// Validate resolves (value, operation) to a pending token. A missing or
// expired value yields ErrTokenInvalidOrExpired; a consumed one yields
// ErrTokenUsed.
func (s *TokenServiceImpl) Validate(db *gorm.DB, value string, op models.OperationType) (*models.TokenManager, error) {
	token, err := s.tokenRepo.FindLive(db, value, op, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalidOrExpired
		}
		return nil, apperrors.InternalError(err)
	}

	if token.IsUsed {
		return nil, apperrors.ErrTokenUsed
	}

	return token, nil
}

// Consume marks the token used inside the caller's transaction.
func (s *TokenServiceImpl) Consume(db *gorm.DB, token *models.TokenManager) error {
	if err := s.tokenRepo.MarkUsed(db, token.ID); err != nil {
		return apperrors.InternalError(err)
	}
	token.IsUsed = true
	return nil
}
