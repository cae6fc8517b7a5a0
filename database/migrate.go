package database

import (
	"fmt"
	"log"

	"jobportal_backend/internal/config"
	"jobportal_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с DSN из конфигурации
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Нужен для маппинга конфликтов уникальных индексов
		// в gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.SavedJob{},
		// Справочники
		&models.Location{},
		&models.Domain{},
		&models.JobType{},
		&models.WorkplaceType{},
		&models.ExperienceLevel{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate ошибка: %v", err)
	}

	log.Println("AutoMigrate успешно завершен.")
	return nil
}
