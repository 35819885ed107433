package repositories

import (
	"errors"
	"strings"

	"empylo_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCircleNotFound       = errors.New("circle not found")
	ErrCircleMemberNotFound = errors.New("circle member not found")
	ErrAlreadyMember        = errors.New("user is already a member")
)

type CircleRepository interface {
	Create(db *gorm.DB, circle *models.Circle) error
	FindByID(db *gorm.DB, id uint) (*models.Circle, error)
	FindByIDWithMembers(db *gorm.DB, id uint) (*models.Circle, error)
	FindByShareLink(db *gorm.DB, shareLink string) (*models.Circle, error)
	FindAll(db *gorm.DB) ([]models.Circle, error)
	FindByOwner(db *gorm.DB, ownerID uint) ([]models.Circle, error)
	FindByMember(db *gorm.DB, userID uint) ([]models.Circle, error)
	Update(db *gorm.DB, circle *models.Circle) error
	UpdateStatus(db *gorm.DB, circleID uint, status models.CircleStatus) error
	Delete(db *gorm.DB, circleID uint) error

	// Membership
	AddMember(db *gorm.DB, member *models.CircleMember) error
	AddMembers(db *gorm.DB, members []*models.CircleMember) error
	FindMember(db *gorm.DB, circleID, userID uint) (*models.CircleMember, error)
	FindMembers(db *gorm.DB, circleID uint) ([]models.CircleMember, error)
	RemoveMember(db *gorm.DB, circleID, userID uint) error
	CountMembers(db *gorm.DB, circleID uint) (int64, error)
}

type CircleRepositoryImpl struct{}

func NewCircleRepository() CircleRepository {
	return &CircleRepositoryImpl{}
}

func (r *CircleRepositoryImpl) Create(db *gorm.DB, circle *models.Circle) error {
	return db.Create(circle).Error
}

func (r *CircleRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Circle, error) {
	var circle models.Circle
	err := db.First(&circle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, err
	}
	return &circle, nil
}

func (r *CircleRepositoryImpl) FindByIDWithMembers(db *gorm.DB, id uint) (*models.Circle, error) {
	var circle models.Circle
	err := db.Preload("Members.User").First(&circle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, err
	}
	return &circle, nil
}

func (r *CircleRepositoryImpl) FindByShareLink(db *gorm.DB, shareLink string) (*models.Circle, error) {
	var circle models.Circle
	err := db.First(&circle, "circle_share_link = ?", shareLink).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, err
	}
	return &circle, nil
}

func (r *CircleRepositoryImpl) FindAll(db *gorm.DB) ([]models.Circle, error) {
	var circles []models.Circle
	err := db.Order("id").Find(&circles).Error
	return circles, err
}

func (r *CircleRepositoryImpl) FindByOwner(db *gorm.DB, ownerID uint) ([]models.Circle, error) {
	var circles []models.Circle
	err := db.Where("circle_owner_id = ?", ownerID).Order("id").Find(&circles).Error
	return circles, err
}

// FindByMember returns circles the user belongs to via a membership row.
func (r *CircleRepositoryImpl) FindByMember(db *gorm.DB, userID uint) ([]models.Circle, error) {
	var circles []models.Circle
	err := db.Joins("JOIN circle_members ON circle_members.circle_id = circles.id").
		Where("circle_members.user_id = ?", userID).
		Order("circles.id").
		Find(&circles).Error
	return circles, err
}

func (r *CircleRepositoryImpl) Update(db *gorm.DB, circle *models.Circle) error {
	result := db.Save(circle)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCircleNotFound
	}
	return nil
}

func (r *CircleRepositoryImpl) UpdateStatus(db *gorm.DB, circleID uint, status models.CircleStatus) error {
	result := db.Model(&models.Circle{}).Where("id = ?", circleID).
		Update("circle_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCircleNotFound
	}
	return nil
}

func (r *CircleRepositoryImpl) Delete(db *gorm.DB, circleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("circle_id = ?", circleID).Delete(&models.CircleMember{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", circleID).Delete(&models.Circle{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCircleNotFound
		}
		return nil
	})
}

// AddMember inserts one membership row. The composite unique index turns
// a concurrent duplicate into ErrAlreadyMember.
func (r *CircleRepositoryImpl) AddMember(db *gorm.DB, member *models.CircleMember) error {
	err := db.Create(member).Error
	if err != nil && IsDuplicateKey(err) {
		return ErrAlreadyMember
	}
	return err
}

// AddMembers batch-inserts memberships, skipping existing rows.
func (r *CircleRepositoryImpl) AddMembers(db *gorm.DB, members []*models.CircleMember) error {
	if len(members) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(members).Error
}

func (r *CircleRepositoryImpl) FindMember(db *gorm.DB, circleID, userID uint) (*models.CircleMember, error) {
	var member models.CircleMember
	err := db.First(&member, "circle_id = ? AND user_id = ?", circleID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCircleMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindMembers returns the circle's memberships with users preloaded.
func (r *CircleRepositoryImpl) FindMembers(db *gorm.DB, circleID uint) ([]models.CircleMember, error) {
	var members []models.CircleMember
	err := db.Preload("User").
		Where("circle_id = ?", circleID).
		Order("id").
		Find(&members).Error
	return members, err
}

func (r *CircleRepositoryImpl) RemoveMember(db *gorm.DB, circleID, userID uint) error {
	result := db.Where("circle_id = ? AND user_id = ?", circleID, userID).
		Delete(&models.CircleMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCircleMemberNotFound
	}
	return nil
}

func (r *CircleRepositoryImpl) CountMembers(db *gorm.DB, circleID uint) (int64, error) {
	var count int64
	err := db.Model(&models.CircleMember{}).Where("circle_id = ?", circleID).Count(&count).Error
	return count, err
}

// IsDuplicateKey matches unique violations for both postgres and sqlite.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
