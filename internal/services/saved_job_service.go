package services

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SavedJobService interface {
	Toggle(db *gorm.DB, userID, jobID string) (*dto.ToggleSavedResponse, error)
	List(db *gorm.DB, userID string, withDetails bool) (*dto.SavedJobsResponse, error)
}

type savedJobService struct {
	savedJobRepo  repositories.SavedJobRepository
	jobRepo       repositories.JobRepository
	referenceRepo repositories.ReferenceRepository

	now func() time.Time
}

func NewSavedJobService(
	savedJobRepo repositories.SavedJobRepository,
	jobRepo repositories.JobRepository,
	referenceRepo repositories.ReferenceRepository,
) SavedJobService {
	return &savedJobService{
		savedJobRepo:  savedJobRepo,
		jobRepo:       jobRepo,
		referenceRepo: referenceRepo,
		now:           time.Now,
	}
}

// Toggle переключает закладку. Состояние читается перед записью,
// поэтому двойное переключение возвращает исходное состояние.
// Повторное сохранение перезаписывает savedAt, история не ведется.
func (s *savedJobService) Toggle(db *gorm.DB, userID, jobID string) (*dto.ToggleSavedResponse, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	exists, err := s.savedJobRepo.Exists(db, userID, jobID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	if exists {
		if err := s.savedJobRepo.Delete(db, userID, jobID); err != nil {
			return nil, apperrors.StoreError(err)
		}
		return &dto.ToggleSavedResponse{Saved: false}, nil
	}

	saved := &models.SavedJob{
		UserID:  userID,
		JobID:   jobID,
		SavedAt: s.now(),
	}
	if err := s.savedJobRepo.Upsert(db, saved); err != nil {
		return nil, apperrors.StoreError(err)
	}
	return &dto.ToggleSavedResponse{Saved: true}, nil
}

// List возвращает закладки пользователя, свежие первыми.
// withDetails добавляет денормализованные вью-модели вакансий;
// закладки на удаленные вакансии в детальном режиме пропускаются.
func (s *savedJobService) List(db *gorm.DB, userID string, withDetails bool) (*dto.SavedJobsResponse, error) {
	saved, err := s.savedJobRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	jobIDs := make([]string, 0, len(saved))
	for _, entry := range saved {
		jobIDs = append(jobIDs, entry.JobID)
	}

	resp := &dto.SavedJobsResponse{JobIDs: jobIDs}
	if !withDetails {
		return resp, nil
	}

	jobs, err := s.jobRepo.FindByIDs(db, jobIDs)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	refData, err := s.referenceRepo.GetAll(db)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	lookup := refData.BuildLookup()

	views := make([]dto.JobView, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		job, ok := jobs[jobID]
		if !ok {
			continue
		}
		views = append(views, buildJobView(&job, lookup, unresolvedPlaceholder))
	}
	resp.Jobs = views

	return resp, nil
}
