package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Application, error)
	FindByJob(db *gorm.DB, jobID string) ([]models.Application, error)
	FindAll(db *gorm.DB) ([]models.Application, error)
	Save(db *gorm.DB, app *models.Application) error
	DeleteByJob(db *gorm.DB, jobID string) error
	DeleteOrphaned(db *gorm.DB) (int64, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	err := db.Create(app).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrApplicationExists
	}
	return err
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Application, error) {
	var apps []models.Application
	if err := db.Where("user_id = ?", userID).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.Application, error) {
	var apps []models.Application
	if err := db.Where("job_id = ?", jobID).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// FindAll - полный скан откликов для свертки счетчиков по вакансиям.
// Известное ограничение масштаба: O(все отклики) на каждый списочный запрос.
func (r *ApplicationRepositoryImpl) FindAll(db *gorm.DB) ([]models.Application, error) {
	var apps []models.Application
	if err := db.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepositoryImpl) Save(db *gorm.DB, app *models.Application) error {
	return db.Save(app).Error
}

func (r *ApplicationRepositoryImpl) DeleteByJob(db *gorm.DB, jobID string) error {
	return db.Delete(&models.Application{}, "job_id = ?", jobID).Error
}

// DeleteOrphaned удаляет отклики, чья вакансия уже не существует
// (компенсирующая чистка для фонового воркера)
func (r *ApplicationRepositoryImpl) DeleteOrphaned(db *gorm.DB) (int64, error) {
	result := db.Exec(`
		DELETE FROM applications
		WHERE job_id NOT IN (SELECT id FROM jobs)
	`)
	return result.RowsAffected, result.Error
}
