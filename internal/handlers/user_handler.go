package handlers

import (
	"empylo_backend/internal/config"
	"empylo_backend/internal/services"
	"empylo_backend/internal/services/dto"
	"empylo_backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	cfg         *config.Config
	userService services.UserService
	storage     storage.Storage
}

func NewUserHandler(base *BaseHandler, cfg *config.Config, userService services.UserService, store storage.Storage) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		cfg:         cfg,
		userService: userService,
		storage:     store,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.GetMe)
		users.GET("/:id", h.GetUser)
		users.PATCH("/update-user-account", h.UpdateProfile)
		users.PATCH("/change-password", h.ChangePassword)
		users.PATCH("/two-step-verification", h.SetTwoStepVerification)
		users.DELETE("/delete-account", h.DeleteAccount)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetUser(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "User fetched successfully", user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetUser(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "User fetched successfully", user)
}

// UpdateProfile accepts multipart form data with an optional
// profileImage file part.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	img, err := saveImage(c, h.storage, h.cfg, "profileImage", "profiles")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.UpdateProfile(db, userID, &req, img.URLPtr())
	if err != nil {
		img.Discard(c)
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Profile updated successfully", user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.userService.ChangePassword(db, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Password changed successfully", nil)
}

func (h *UserHandler) SetTwoStepVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.userService.SetTwoStepVerification(db, userID, *req.Enabled); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "Two step verification deactivated"
	if *req.Enabled {
		message = "Two step verification activated"
	}
	h.RespondOK(c, message, nil)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.userService.SoftDelete(db, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Account deleted successfully", nil)
}
