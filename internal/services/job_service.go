package services

import (
	"encoding/json"
	"errors"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	Create(db *gorm.DB, req *dto.CreateJobRequest) (*dto.JobView, error)
	Update(db *gorm.DB, jobID string, req *dto.UpdateJobRequest) (*dto.JobView, error)
	Delete(db *gorm.DB, jobID string) error
}

type jobService struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	savedJobRepo    repositories.SavedJobRepository

	now func() time.Time

	// Граница транзакции каскадного удаления
	inTransaction func(db *gorm.DB, fn func(tx *gorm.DB) error) error
}

func NewJobService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	savedJobRepo repositories.SavedJobRepository,
) JobService {
	return &jobService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		savedJobRepo:    savedJobRepo,
		now:             time.Now,
		inTransaction: func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
			return db.Transaction(fn)
		},
	}
}

func (s *jobService) Create(db *gorm.DB, req *dto.CreateJobRequest) (*dto.JobView, error) {
	if req.RecruiterID != nil && req.EmployeeID != nil {
		return nil, apperrors.ErrInvalidOperation("jobs", "Job cannot belong to both a recruiter and an employee")
	}

	postedAt := s.now()
	if req.PostedAt != nil {
		postedAt = *req.PostedAt
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		CompanyName: req.CompanyName,
		Salary:      req.Salary,
		PostedAt:    postedAt,

		LocationID:        req.LocationID,
		DomainID:          req.DomainID,
		JobTypeID:         req.JobTypeID,
		WorkplaceTypeID:   req.WorkplaceTypeID,
		ExperienceLevelID: req.ExperienceLevelID,

		RecruiterID: req.RecruiterID,
		EmployeeID:  req.EmployeeID,
		IsReferral:  req.IsReferral,
		JobLink:     req.JobLink,
		Vacancies:   req.Vacancies,
		Benefits:    encodeBenefits(req.Benefits),
	}
	if job.Vacancies == 0 {
		job.Vacancies = 1
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.StoreError(err)
	}

	view := baseJobView(job)
	return &view, nil
}

// Update - частичная перезапись. Поле id из payload отбрасывается:
// идентификатор вакансии менять нельзя.
func (s *jobService) Update(db *gorm.DB, jobID string, req *dto.UpdateJobRequest) (*dto.JobView, error) {
	fields := map[string]interface{}{}

	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.Salary != nil {
		fields["salary"] = *req.Salary
	}
	if req.LocationID != nil {
		fields["location_id"] = *req.LocationID
	}
	if req.DomainID != nil {
		fields["domain_id"] = *req.DomainID
	}
	if req.JobTypeID != nil {
		fields["job_type_id"] = *req.JobTypeID
	}
	if req.WorkplaceTypeID != nil {
		fields["workplace_type_id"] = *req.WorkplaceTypeID
	}
	if req.ExperienceLevelID != nil {
		fields["experience_level_id"] = *req.ExperienceLevelID
	}
	if req.IsReferral != nil {
		fields["is_referral"] = *req.IsReferral
	}
	if req.JobLink != nil {
		fields["job_link"] = *req.JobLink
	}
	if req.Vacancies != nil {
		fields["vacancies"] = *req.Vacancies
	}
	if req.Benefits != nil {
		fields["benefits"] = encodeBenefits(req.Benefits)
	}

	if len(fields) == 0 {
		return nil, apperrors.ValidationError("No updatable fields in payload")
	}

	job, err := s.jobRepo.UpdateFields(db, jobID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	view := baseJobView(job)
	return &view, nil
}

// Delete удаляет вакансию каскадом в одной транзакции:
// сначала отклики и закладки, затем сама запись. Сбой на любом шаге
// откатывает все - осиротевших откликов после удаления не остается.
func (s *jobService) Delete(db *gorm.DB, jobID string) error {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.StoreError(err)
	}

	err := s.inTransaction(db, func(tx *gorm.DB) error {
		if err := s.applicationRepo.DeleteByJob(tx, jobID); err != nil {
			return err
		}
		if err := s.savedJobRepo.DeleteByJob(tx, jobID); err != nil {
			return err
		}
		return s.jobRepo.Delete(tx, jobID)
	})
	if err != nil {
		logger.Error("job cascade delete failed", "job_id", jobID, "error", err)
		return apperrors.StoreError(err)
	}

	return nil
}

func encodeBenefits(benefits []string) datatypes.JSON {
	if len(benefits) == 0 {
		return nil
	}
	raw, err := json.Marshal(benefits)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
