package handlers

import (
	"empylo_backend/internal/services"
	"empylo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	*BaseHandler
	roleService services.RoleService
}

func NewRoleHandler(base *BaseHandler, roleService services.RoleService) *RoleHandler {
	return &RoleHandler{
		BaseHandler: base,
		roleService: roleService,
	}
}

func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	{
		roles.POST("/create-module", h.CreateModule)
		roles.GET("/get-all-modules", h.ListModules)
		roles.POST("/create-permission", h.CreatePermission)
		roles.GET("/get-all-permissions", h.ListPermissions)
		roles.GET("/get-all-roles", h.ListRoles)
		roles.GET("/paginated", h.RolesPaginated)
		roles.GET("/:id", h.GetRole)
		roles.POST("/bulk-delete-roles", h.BulkDeleteRoles)
	}
}

func (h *RoleHandler) CreateModule(c *gin.Context) {
	var req dto.CreateModuleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	module, err := h.roleService.CreateModule(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Module created successfully", module)
}

func (h *RoleHandler) ListModules(c *gin.Context) {
	db := h.GetDB(c)

	modules, err := h.roleService.ListModules(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Modules fetched successfully", modules)
}

func (h *RoleHandler) CreatePermission(c *gin.Context) {
	var req dto.CreatePermissionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	permission, err := h.roleService.CreatePermission(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Permission created successfully", permission)
}

func (h *RoleHandler) ListPermissions(c *gin.Context) {
	db := h.GetDB(c)

	permissions, err := h.roleService.ListPermissions(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Permissions fetched successfully", permissions)
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	db := h.GetDB(c)

	roles, err := h.roleService.ListRoles(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Roles fetched successfully", roles)
}

func (h *RoleHandler) RolesPaginated(c *gin.Context) {
	var query dto.RolePageQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	page, err := h.roleService.RolesPaginated(db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Roles fetched successfully", page)
}

func (h *RoleHandler) GetRole(c *gin.Context) {
	roleID, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	role, err := h.roleService.GetRole(db, roleID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Role fetched successfully", role)
}

func (h *RoleHandler) BulkDeleteRoles(c *gin.Context) {
	var req dto.BulkDeleteRolesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.roleService.BulkDeleteRoles(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Roles deleted successfully", nil)
}
