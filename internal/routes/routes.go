package routes

import (
	"empylo_backend/internal/handlers"
	"empylo_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes. Authentication endpoints
// and the share-link join are public; everything else sits behind the
// auth middleware.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.CircleHandler.RegisterPublicRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		appHandlers.UserHandler.RegisterRoutes(protected)
		appHandlers.CircleHandler.RegisterRoutes(protected)
		appHandlers.AssessmentHandler.RegisterRoutes(protected)
		appHandlers.RoleHandler.RegisterRoutes(protected)
	}

	company := api.Group("")
	company.Use(middleware.AuthMiddleware())
	company.Use(middleware.RequireCompanyAccount())
	{
		appHandlers.CompanyHandler.RegisterRoutes(company)
	}
}
