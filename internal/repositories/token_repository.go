package repositories

import (
	"errors"
	"time"

	"empylo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound = errors.New("token not found")
)

type TokenRepository interface {
	Create(db *gorm.DB, token *models.TokenManager) error
	FindLive(db *gorm.DB, value string, op models.OperationType, now time.Time) (*models.TokenManager, error)
	FindByValueAndOp(db *gorm.DB, value string, op models.OperationType) (*models.TokenManager, error)
	MarkUsed(db *gorm.DB, tokenID uint) error
	DeleteForUser(db *gorm.DB, userID uint, op models.OperationType) error
	ExpireStale(db *gorm.DB, now time.Time) (int64, error)
}

type TokenRepositoryImpl struct{}

func NewTokenRepository() TokenRepository {
	return &TokenRepositoryImpl{}
}

func (r *TokenRepositoryImpl) Create(db *gorm.DB, token *models.TokenManager) error {
	return db.Create(token).Error
}

// FindLive returns the token matching (value, operation) that has not yet
// expired, regardless of its used flag. The caller distinguishes used
// from live.
func (r *TokenRepositoryImpl) FindLive(db *gorm.DB, value string, op models.OperationType, now time.Time) (*models.TokenManager, error) {
	var token models.TokenManager
	err := db.Where("token = ? AND operation_type = ? AND expiry_date > ?", value, op, now).
		Order("id DESC").First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepositoryImpl) FindByValueAndOp(db *gorm.DB, value string, op models.OperationType) (*models.TokenManager, error) {
	var token models.TokenManager
	err := db.Where("token = ? AND operation_type = ?", value, op).
		Order("id DESC").First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepositoryImpl) MarkUsed(db *gorm.DB, tokenID uint) error {
	result := db.Model(&models.TokenManager{}).Where("id = ?", tokenID).
		Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// DeleteForUser removes all tokens of one operation type for a user,
// used before issuing a replacement on resend.
func (r *TokenRepositoryImpl) DeleteForUser(db *gorm.DB, userID uint, op models.OperationType) error {
	return db.Where("user_id = ? AND operation_type = ?", userID, op).
		Delete(&models.TokenManager{}).Error
}

// ExpireStale marks expired unused tokens as used so they can never be
// consumed. Returns the number of rows touched.
func (r *TokenRepositoryImpl) ExpireStale(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.TokenManager{}).
		Where("is_used = ? AND expiry_date <= ?", false, now).
		Update("is_used", true)
	return result.RowsAffected, result.Error
}
