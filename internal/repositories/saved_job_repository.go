package repositories

import (
	"jobportal_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedJobRepository interface {
	// Upsert: повторное сохранение перезаписывает saved_at
	Upsert(db *gorm.DB, saved *models.SavedJob) error
	// Delete несуществующей записи - no-op успех
	Delete(db *gorm.DB, userID, jobID string) error
	FindByUser(db *gorm.DB, userID string) ([]models.SavedJob, error)
	Exists(db *gorm.DB, userID, jobID string) (bool, error)
	DeleteByJob(db *gorm.DB, jobID string) error
	DeleteOrphaned(db *gorm.DB) (int64, error)
}

type SavedJobRepositoryImpl struct{}

func NewSavedJobRepository() SavedJobRepository {
	return &SavedJobRepositoryImpl{}
}

func (r *SavedJobRepositoryImpl) Upsert(db *gorm.DB, saved *models.SavedJob) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"saved_at"}),
	}).Create(saved).Error
}

func (r *SavedJobRepositoryImpl) Delete(db *gorm.DB, userID, jobID string) error {
	return db.Delete(&models.SavedJob{}, "user_id = ? AND job_id = ?", userID, jobID).Error
}

// FindByUser возвращает закладки в порядке сохранения (свежие первыми)
func (r *SavedJobRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := db.Where("user_id = ?", userID).Order("saved_at DESC").Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *SavedJobRepositoryImpl) Exists(db *gorm.DB, userID, jobID string) (bool, error) {
	var count int64
	err := db.Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (r *SavedJobRepositoryImpl) DeleteByJob(db *gorm.DB, jobID string) error {
	return db.Delete(&models.SavedJob{}, "job_id = ?", jobID).Error
}

func (r *SavedJobRepositoryImpl) DeleteOrphaned(db *gorm.DB) (int64, error) {
	result := db.Exec(`
		DELETE FROM saved_jobs
		WHERE job_id NOT IN (SELECT id FROM jobs)
	`)
	return result.RowsAffected, result.Error
}
