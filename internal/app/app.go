package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobportal_backend/database"
	"jobportal_backend/internal/cache"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/pkg/email"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"
	"jobportal_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
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

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	cleanup := workers.NewCleanupWorker(gormDB, repositories.NewApplicationRepository(), repositories.NewSavedJobRepository())
	cleanup.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	// Redis необязателен: без него справочники читаются из базы
	var refCache *cache.ReferenceCache
	if cfg.Redis.Address != "" {
		client, err := cache.NewClient(cache.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("Redis unavailable, reference cache disabled", "error", err)
		} else {
			refCache = cache.NewReferenceCache(client, time.Duration(cfg.Cache.ReferenceTTLSeconds)*time.Second)
			logger.Info("Reference cache enabled", "addr", cfg.Redis.Address)
		}
	}

	var mailer email.Sender
	if cfg.Email.SMTPHost != "" {
		smtpSender, err := email.NewSMTPSender(cfg.Email)
		if err != nil {
			logger.Warn("SMTP disabled, selection notices will be skipped", "error", err)
			mailer = email.NoopSender{}
		} else {
			mailer = smtpSender
		}
	} else {
		mailer = email.NoopSender{}
	}

	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	savedJobRepo := repositories.NewSavedJobRepository()
	referenceRepo := repositories.NewReferenceRepository(refCache)

	return &services.ServiceContainer{
		JobQueryService:     services.NewJobQueryService(jobRepo, applicationRepo, referenceRepo),
		JobService:          services.NewJobService(jobRepo, applicationRepo, savedJobRepo),
		ApplicationService:  services.NewApplicationService(applicationRepo, jobRepo, userRepo, mailer),
		SavedJobService:     services.NewSavedJobService(savedJobRepo, jobRepo, referenceRepo),
		NotificationService: services.NewNotificationService(applicationRepo, jobRepo, userRepo),
		UserService:         services.NewUserService(userRepo),
		ReferenceService:    services.NewReferenceService(referenceRepo),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		JobHandler:          handlers.NewJobHandler(baseHandler, container.JobQueryService, container.JobService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
		SavedJobHandler:     handlers.NewSavedJobHandler(baseHandler, container.SavedJobService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService),
		ReferenceHandler:    handlers.NewReferenceHandler(baseHandler, container.ReferenceService),
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

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
