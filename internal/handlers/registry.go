package handlers

// AppHandlers holds all application handlers.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	CircleHandler     *CircleHandler
	CompanyHandler    *CompanyHandler
	AssessmentHandler *AssessmentHandler
	RoleHandler       *RoleHandler
}
