package handlers

import (
	"net/http"

	"empylo_backend/internal/services"
	"empylo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes registers the public authentication surface.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/user-signup", h.Signup)
		auth.POST("/verify-email-otp", h.VerifyEmailOTP)
		auth.POST("/login", h.Login)
		auth.POST("/login-with-two-step-verification", h.TwoStepLogin)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.PATCH("/password-reset", h.PasswordReset)
		auth.POST("/resend-verification-otp", h.ResendVerificationOTP)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Signup(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Signup successful. Check your email for the verification code.", user.Sanitized())
}

func (h *AuthHandler) VerifyEmailOTP(c *gin.Context) {
	var req dto.VerifyEmailOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.VerifyEmailOTP(db, req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Email verified successfully", user.Sanitized())
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	outcome, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if outcome.TwoStepRequired {
		h.RespondOK(c, outcome.Message, dto.AckResponse{Message: outcome.Message})
		return
	}

	h.RespondOK(c, "Login successful", outcome.Session)
}

func (h *AuthHandler) TwoStepLogin(c *gin.Context) {
	var req dto.TwoStepLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	session, err := h.authService.TwoStepLogin(db, req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Login successful", session)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ForgotPassword(db, req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Check your email for the password reset link",
		"status":  http.StatusOK,
	})
}

func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	session, err := h.authService.ResetPassword(db, req.Token, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Password reset successfully", session)
}

func (h *AuthHandler) ResendVerificationOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ResendVerificationOTP(db, req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Verification code resent", nil)
}
