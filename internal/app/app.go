package app

import (
	"context"
	"fmt"
	"time"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/config"
	"empylo_backend/internal/email"
	"empylo_backend/internal/handlers"
	"empylo_backend/internal/logger"
	"empylo_backend/internal/middleware"
	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/routes"
	"empylo_backend/internal/services"
	"empylo_backend/internal/storage"
	"empylo_backend/internal/validator"
	"empylo_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if err := auth.Init(cfg.JWT.Secret); err != nil {
		logger.Fatal("Failed to initialize JWT signing", "error", err)
	}

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	tokenWorker := workers.NewTokenWorker(
		gormDB,
		repositories.NewTokenRepository(),
		time.Duration(cfg.Token.SweepMinutes)*time.Minute,
	)
	tokenWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate applies the schema for all domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.TokenManager{},
		&models.Circle{},
		&models.CircleMember{},
		&models.Assessment{},
		&models.Topic{},
		&models.Question{},
		&models.Answer{},
		&models.Module{},
		&models.Permission{},
		&models.Role{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	emailService := buildEmailProvider(cfg)

	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewTokenRepository()
	circleRepo := repositories.NewCircleRepository()
	assessmentRepo := repositories.NewAssessmentRepository()
	roleRepo := repositories.NewRoleRepository()

	tokenService := services.NewTokenService(tokenRepo)
	authService := services.NewAuthService(cfg, userRepo, tokenService, emailService)
	userService := services.NewUserService(userRepo)
	circleService := services.NewCircleService(cfg, circleRepo, userRepo)
	companyService := services.NewCompanyService(userRepo)
	assessmentService := services.NewAssessmentService(assessmentRepo, userRepo)
	roleService := services.NewRoleService(roleRepo)

	return &services.ServiceContainer{
		TokenService:      tokenService,
		AuthService:       authService,
		UserService:       userService,
		CircleService:     circleService,
		CompanyService:    companyService,
		AssessmentService: assessmentService,
		RoleService:       roleService,
		EmailService:      emailService,
		Storage:           storageInstance,
	}
}

// buildEmailProvider wires SMTP when configured, otherwise a mock that
// logs instead of sending. Local development runs without a mail
// server.
func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using the mock email provider")
		return email.NewMockProvider()
	}

	smtpConfig := email.DefaultConfig()
	smtpConfig.Host = cfg.Email.SMTPHost
	if cfg.Email.SMTPPort != 0 {
		smtpConfig.Port = cfg.Email.SMTPPort
	}
	smtpConfig.Username = cfg.Email.SMTPUsername
	smtpConfig.Password = cfg.Email.SMTPPassword
	smtpConfig.FromEmail = cfg.Email.FromEmail
	smtpConfig.FromName = cfg.Email.FromName
	smtpConfig.UseTLS = cfg.Email.UseTLS

	renderer := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.Warn("Failed to load mail templates, using built-ins", "dir", cfg.Email.TemplatesDir, "error", err)
		}
	}

	return email.NewSMTPProvider(smtpConfig, renderer)
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:       handlers.NewUserHandler(baseHandler, cfg, container.UserService, container.Storage),
		CircleHandler:     handlers.NewCircleHandler(baseHandler, cfg, container.CircleService, container.Storage),
		CompanyHandler:    handlers.NewCompanyHandler(baseHandler, container.CompanyService),
		AssessmentHandler: handlers.NewAssessmentHandler(baseHandler, container.AssessmentService),
		RoleHandler:       handlers.NewRoleHandler(baseHandler, container.RoleService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
