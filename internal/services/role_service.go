package services

import (
	"fmt"
	"strings"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultRolePageSize = 10

// RoleService manages the permission catalogue: platform modules, the
// permissions scoped to them, and the roles that group permissions.
type RoleService interface {
	CreateModule(db *gorm.DB, req *dto.CreateModuleRequest) (*models.Module, error)
	ListModules(db *gorm.DB) ([]models.Module, error)

	CreatePermission(db *gorm.DB, req *dto.CreatePermissionRequest) (*models.Permission, error)
	ListPermissions(db *gorm.DB) ([]models.Permission, error)

	ListRoles(db *gorm.DB) ([]models.Role, error)
	RolesPaginated(db *gorm.DB, query *dto.RolePageQuery) (*dto.RolePage, error)
	GetRole(db *gorm.DB, roleID uint) (*models.Role, error)
	BulkDeleteRoles(db *gorm.DB, req *dto.BulkDeleteRolesRequest) error
}

type RoleServiceImpl struct {
	roleRepo repositories.RoleRepository
}

func NewRoleService(roleRepo repositories.RoleRepository) RoleService {
	return &RoleServiceImpl{roleRepo: roleRepo}
}

func (s *RoleServiceImpl) CreateModule(db *gorm.DB, req *dto.CreateModuleRequest) (*models.Module, error) {
	module := &models.Module{
		ModuleName:        req.ModuleName,
		ModuleDescription: req.ModuleDescription,
	}
	if err := s.roleRepo.CreateModule(db, module); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return module, nil
}

func (s *RoleServiceImpl) ListModules(db *gorm.DB) ([]models.Module, error) {
	modules, err := s.roleRepo.FindModules(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(modules) == 0 {
		return nil, apperrors.NewNotFoundError("No modules found.")
	}
	return modules, nil
}

// CreatePermission registers a capability under an existing module.
// Titles are normalized to upper case and must be unique.
func (s *RoleServiceImpl) CreatePermission(db *gorm.DB, req *dto.CreatePermissionRequest) (*models.Permission, error) {
	module, err := s.roleRepo.FindModuleByID(db, req.ModuleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrModuleNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No module found for id %d", req.ModuleID))
		}
		return nil, apperrors.InternalError(err)
	}

	_, err = s.roleRepo.FindPermissionByTitle(db, req.PermissionName)
	if err == nil {
		return nil, apperrors.NewBadRequestError("Permission name not unique")
	}
	if !apperrors.Is(err, repositories.ErrPermissionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	permission := &models.Permission{
		PermissionTitle: strings.ToUpper(req.PermissionName),
		ModuleID:        module.ID,
	}
	if err := s.roleRepo.CreatePermission(db, permission); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return permission, nil
}

func (s *RoleServiceImpl) ListPermissions(db *gorm.DB) ([]models.Permission, error) {
	permissions, err := s.roleRepo.FindPermissions(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(permissions) == 0 {
		return nil, apperrors.NewNotFoundError("No permissions found.")
	}
	return permissions, nil
}

func (s *RoleServiceImpl) ListRoles(db *gorm.DB) ([]models.Role, error) {
	roles, err := s.roleRepo.FindRoles(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(roles) == 0 {
		return nil, apperrors.NewNotFoundError("No roles found.")
	}
	return roles, nil
}

func (s *RoleServiceImpl) RolesPaginated(db *gorm.DB, query *dto.RolePageQuery) (*dto.RolePage, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultRolePageSize
	}
	pageNo := query.PageNo
	if pageNo < 0 {
		pageNo = 0
	}

	roles, total, err := s.roleRepo.FindRolesPaginated(db, pageNo*pageSize, pageSize, query.Keyword)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(roles) == 0 {
		return nil, apperrors.NewNotFoundError("No roles found.")
	}

	return &dto.RolePage{Data: roles, Count: total}, nil
}

func (s *RoleServiceImpl) GetRole(db *gorm.DB, roleID uint) (*models.Role, error) {
	role, err := s.roleRepo.FindRoleByID(db, roleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return nil, apperrors.NewNotFoundError("No role found for specified id.")
		}
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

// BulkDeleteRoles soft-deletes the listed roles. Fails when none of the
// ids matched a row.
func (s *RoleServiceImpl) BulkDeleteRoles(db *gorm.DB, req *dto.BulkDeleteRolesRequest) error {
	deleted, err := s.roleRepo.SoftDeleteRoles(db, req.RoleIDs)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if deleted == 0 {
		return apperrors.NewBadRequestError("Unable to delete roles")
	}
	return nil
}
