package repositories

import (
	"errors"
	"strings"

	"empylo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrPermissionNotFound = errors.New("permission not found")
)

type RoleRepository interface {
	CreateModule(db *gorm.DB, module *models.Module) error
	FindModules(db *gorm.DB) ([]models.Module, error)
	FindModuleByID(db *gorm.DB, id uint) (*models.Module, error)

	CreatePermission(db *gorm.DB, permission *models.Permission) error
	FindPermissions(db *gorm.DB) ([]models.Permission, error)
	FindPermissionByTitle(db *gorm.DB, title string) (*models.Permission, error)

	FindRoles(db *gorm.DB) ([]models.Role, error)
	FindRoleByID(db *gorm.DB, id uint) (*models.Role, error)
	FindRolesPaginated(db *gorm.DB, offset, limit int, keyword string) ([]models.Role, int64, error)
	SoftDeleteRoles(db *gorm.DB, roleIDs []uint) (int64, error)
}

type RoleRepositoryImpl struct{}

func NewRoleRepository() RoleRepository {
	return &RoleRepositoryImpl{}
}

func (r *RoleRepositoryImpl) CreateModule(db *gorm.DB, module *models.Module) error {
	return db.Create(module).Error
}

func (r *RoleRepositoryImpl) FindModules(db *gorm.DB) ([]models.Module, error) {
	var modules []models.Module
	err := db.Preload("Permissions").
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&modules).Error
	return modules, err
}

func (r *RoleRepositoryImpl) FindModuleByID(db *gorm.DB, id uint) (*models.Module, error) {
	var module models.Module
	err := db.First(&module, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	return &module, nil
}

func (r *RoleRepositoryImpl) CreatePermission(db *gorm.DB, permission *models.Permission) error {
	return db.Create(permission).Error
}

func (r *RoleRepositoryImpl) FindPermissions(db *gorm.DB) ([]models.Permission, error) {
	var permissions []models.Permission
	err := db.Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&permissions).Error
	return permissions, err
}

func (r *RoleRepositoryImpl) FindPermissionByTitle(db *gorm.DB, title string) (*models.Permission, error) {
	var permission models.Permission
	err := db.First(&permission, "permission_title = ?", strings.ToUpper(title)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, err
	}
	return &permission, nil
}

func (r *RoleRepositoryImpl) FindRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	err := db.Preload("Permissions").
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&roles).Error
	return roles, err
}

func (r *RoleRepositoryImpl) FindRoleByID(db *gorm.DB, id uint) (*models.Role, error) {
	var role models.Role
	err := db.Preload("Permissions").First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) FindRolesPaginated(db *gorm.DB, offset, limit int, keyword string) ([]models.Role, int64, error) {
	query := db.Model(&models.Role{}).Where("is_deleted = ?", false)
	if keyword != "" {
		query = query.Where("LOWER(role_name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []models.Role
	err := query.Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&roles).Error
	return roles, total, err
}

// SoftDeleteRoles flags the given roles deleted, returning how many
// rows changed.
func (r *RoleRepositoryImpl) SoftDeleteRoles(db *gorm.DB, roleIDs []uint) (int64, error) {
	result := db.Model(&models.Role{}).
		Where("id IN ?", roleIDs).
		Update("is_deleted", true)
	return result.RowsAffected, result.Error
}
