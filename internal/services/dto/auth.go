package dto

import "empylo_backend/internal/models"

// SignupRequest creates a personal or company account.
type SignupRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	AccountType     string `json:"accountType" validate:"is-account-type"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	TermsConditions bool   `json:"termsConditions"`
}

type VerifyEmailOTPRequest struct {
	Token string `json:"token" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TwoStepLoginRequest completes a two-step login with the mailed code.
type TwoStepLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginResponse carries the session assertion and the sanitized user.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

// AckResponse acknowledges an operation that yields no session, e.g.
// two-step login start.
type AckResponse struct {
	Message string `json:"message"`
}
