package services

import (
	"empylo_backend/internal/email"
	"empylo_backend/internal/storage"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	TokenService      TokenService
	AuthService       AuthService
	UserService       UserService
	CircleService     CircleService
	CompanyService    CompanyService
	AssessmentService AssessmentService
	RoleService       RoleService
	EmailService      email.Provider
	Storage           storage.Storage
}
