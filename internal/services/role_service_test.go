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

func newRoleService() RoleService {
	return NewRoleService(repositories.NewRoleRepository())
}

func seedRole(t *testing.T, db *gorm.DB, name string) *models.Role {
	t.Helper()
	role := &models.Role{RoleName: name}
	require.NoError(t, db.Create(role).Error)
	return role
}

func TestCreateModuleAndPermission(t *testing.T) {
	db := openTestDB(t)
	svc := newRoleService()

	module, err := svc.CreateModule(db, &dto.CreateModuleRequest{
		ModuleName:        "Circles",
		ModuleDescription: "Circle management",
	})
	require.NoError(t, err)
	require.NotZero(t, module.ID)

	permission, err := svc.CreatePermission(db, &dto.CreatePermissionRequest{
		ModuleID:       module.ID,
		PermissionName: "manage-circles",
	})
	require.NoError(t, err)
	assert.Equal(t, "MANAGE-CIRCLES", permission.PermissionTitle)
	assert.Equal(t, module.ID, permission.ModuleID)

	modules, err := svc.ListModules(db)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	require.Len(t, modules[0].Permissions, 1)
}

func TestCreatePermissionRejections(t *testing.T) {
	db := openTestDB(t)
	svc := newRoleService()

	_, err := svc.CreatePermission(db, &dto.CreatePermissionRequest{
		ModuleID:       9999,
		PermissionName: "orphaned",
	})
	require.Error(t, err)

	module, err := svc.CreateModule(db, &dto.CreateModuleRequest{ModuleName: "Users"})
	require.NoError(t, err)

	_, err = svc.CreatePermission(db, &dto.CreatePermissionRequest{
		ModuleID:       module.ID,
		PermissionName: "edit-users",
	})
	require.NoError(t, err)

	// Title uniqueness is case-insensitive through normalization.
	_, err = svc.CreatePermission(db, &dto.CreatePermissionRequest{
		ModuleID:       module.ID,
		PermissionName: "EDIT-USERS",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, "Permission name not unique", appErr.Message)
}

func TestListPermissionsEmptyIsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newRoleService()

	_, err := svc.ListPermissions(db)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestRolesPaginated(t *testing.T) {
	db := openTestDB(t)
	svc := newRoleService()

	seedRole(t, db, "Administrator")
	seedRole(t, db, "Moderator")
	seedRole(t, db, "Auditor")

	page, err := svc.RolesPaginated(db, &dto.RolePageQuery{PageNo: 0, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 3, page.Count)

	page, err = svc.RolesPaginated(db, &dto.RolePageQuery{PageNo: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	page, err = svc.RolesPaginated(db, &dto.RolePageQuery{Keyword: "admin"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Administrator", page.Data[0].RoleName)
	assert.EqualValues(t, 1, page.Count)
}

func TestBulkDeleteRolesIsSoft(t *testing.T) {
	db := openTestDB(t)
	svc := newRoleService()

	keep := seedRole(t, db, "Keeper")
	drop := seedRole(t, db, "Dropper")

	require.NoError(t, svc.BulkDeleteRoles(db, &dto.BulkDeleteRolesRequest{
		RoleIDs: []uint{drop.ID},
	}))

	roles, err := svc.ListRoles(db)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, keep.ID, roles[0].ID)

	// The row survives as a flagged record, not a hard delete.
	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// GetRole still resolves the flagged role by id.
	role, err := svc.GetRole(db, drop.ID)
	require.NoError(t, err)
	assert.True(t, role.IsDeleted)

	err = svc.BulkDeleteRoles(db, &dto.BulkDeleteRolesRequest{RoleIDs: []uint{9999}})
	require.Error(t, err)
}
