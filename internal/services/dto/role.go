package dto

import "empylo_backend/internal/models"

// CreateModuleRequest registers a platform area permissions can attach
// to.
type CreateModuleRequest struct {
	ModuleName        string `json:"moduleName" binding:"required"`
	ModuleDescription string `json:"moduleDescription"`
}

// CreatePermissionRequest adds a named capability under an existing
// module.
type CreatePermissionRequest struct {
	ModuleID       uint   `json:"moduleId" binding:"required"`
	PermissionName string `json:"permissionName" binding:"required"`
}

// RolePageQuery pages the role list, optionally filtered by a
// case-insensitive name keyword.
type RolePageQuery struct {
	PageNo   int    `json:"pageNo" form:"pageNo"`
	PageSize int    `json:"pageSize" form:"pageSize"`
	Keyword  string `json:"keyword" form:"keyword"`
}

// RolePage is one page of roles plus the unfiltered-by-paging total.
type RolePage struct {
	Data  []models.Role `json:"data"`
	Count int64         `json:"count"`
}

// BulkDeleteRolesRequest soft-deletes the listed roles.
type BulkDeleteRolesRequest struct {
	RoleIDs []uint `json:"roleIds" binding:"required,min=1"`
}
