package repositories

import (
	"errors"
	"strings"
	"time"

	"empylo_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByEmails(db *gorm.DB, emails []string) ([]models.User, error)
	Create(db *gorm.DB, user *models.User) error
	CreateBatch(db *gorm.DB, users []*models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, userID uint, fields map[string]interface{}) error
	MarkVerified(db *gorm.DB, userID uint) error
	SoftDelete(db *gorm.DB, userID uint) error

	// Company roster
	FindCompanyMembers(db *gorm.DB, companyID uint) ([]models.User, error)
	FindCompanyMember(db *gorm.DB, companyID, memberID uint) (*models.User, error)
	ClearCompany(db *gorm.DB, memberID uint) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmails(db *gorm.DB, emails []string) ([]models.User, error) {
	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		lowered = append(lowered, strings.ToLower(e))
	}

	var users []models.User
	err := db.Where("email IN ?", lowered).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(user.Email)

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

// CreateBatch inserts users, silently skipping email collisions.
func (r *UserRepositoryImpl) CreateBatch(db *gorm.DB, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	for _, u := range users {
		u.Email = strings.ToLower(u.Email)
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(users).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, userID uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) MarkVerified(db *gorm.DB, userID uint) error {
	return r.UpdateFields(db, userID, map[string]interface{}{
		"is_email_verified": true,
		"is_activated":      true,
		"status":            models.UserStatusActive,
	})
}

// SoftDelete flags the account; the row stays.
func (r *UserRepositoryImpl) SoftDelete(db *gorm.DB, userID uint) error {
	return r.UpdateFields(db, userID, map[string]interface{}{
		"is_deleted":   true,
		"is_activated": false,
		"status":       models.UserStatusInactive,
	})
}

func (r *UserRepositoryImpl) FindCompanyMembers(db *gorm.DB, companyID uint) ([]models.User, error) {
	var members []models.User
	err := db.Where("company_id = ?", companyID).Order("id").Find(&members).Error
	return members, err
}

func (r *UserRepositoryImpl) FindCompanyMember(db *gorm.DB, companyID, memberID uint) (*models.User, error) {
	var member models.User
	err := db.First(&member, "id = ? AND company_id = ?", memberID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *UserRepositoryImpl) ClearCompany(db *gorm.DB, memberID uint) error {
	return r.UpdateFields(db, memberID, map[string]interface{}{
		"company_id": nil,
	})
}
