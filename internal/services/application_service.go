package services

import (
	"errors"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/pkg/email"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(db *gorm.DB, userID, jobID string) (*dto.ApplicationView, error)
	SetStatus(db *gorm.DB, applicationID string, statusID int) (*dto.ApplicationView, error)
	GetUserApplications(db *gorm.DB, userID string) ([]dto.ApplicationView, error)
	GetJobApplications(db *gorm.DB, jobID string) ([]dto.ApplicationView, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository
	mailer          email.Sender

	now func() time.Time
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	mailer email.Sender,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		mailer:          mailer,
		now:             time.Now,
	}
}

// Apply создает отклик со статусом Applied и детерминированным ключом.
// Повторная подача на ту же вакансию упирается в уникальный индекс
// и возвращается как конфликт, а не как вторая запись.
func (s *applicationService) Apply(db *gorm.DB, userID, jobID string) (*dto.ApplicationView, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	appliedAt := s.now()
	app := &models.Application{
		ID:        models.ApplicationKey(userID, jobID),
		JobID:     jobID,
		UserID:    userID,
		StatusID:  models.ApplicationStatusApplied,
		AppliedAt: &appliedAt,
	}

	if err := s.applicationRepo.Create(db, app); err != nil {
		if errors.Is(err, repositories.ErrApplicationExists) {
			return nil, apperrors.ErrApplicationExists
		}
		return nil, apperrors.StoreError(err)
	}

	view := toApplicationView(app)
	return &view, nil
}

// SetStatus выполняет переход статуса. Откаты запрещены:
// допустимы только переходы вперед из таблицы переходов.
func (s *applicationService) SetStatus(db *gorm.DB, applicationID string, statusID int) (*dto.ApplicationView, error) {
	if !models.IsKnownApplicationStatus(statusID) {
		return nil, apperrors.ValidationError("Unknown application status")
	}

	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	if !models.IsValidStatusTransition(app.StatusID, statusID) {
		return nil, apperrors.ErrStatusTransition
	}

	now := s.now()
	app.StatusID = statusID
	app.UpdatedAt = &now
	if statusID == models.ApplicationStatusProfileViewed && app.ViewedAt == nil {
		app.ViewedAt = &now
	}

	if err := s.applicationRepo.Save(db, app); err != nil {
		return nil, apperrors.StoreError(err)
	}

	switch statusID {
	case models.ApplicationStatusSelected:
		s.notifySelected(db, app)
	case models.ApplicationStatusProfileViewed, models.ApplicationStatusNotSuitable:
		s.notifyStatus(db, app)
	}

	view := toApplicationView(app)
	return &view, nil
}

func (s *applicationService) GetUserApplications(db *gorm.DB, userID string) ([]dto.ApplicationView, error) {
	apps, err := s.applicationRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return toApplicationViews(apps), nil
}

func (s *applicationService) GetJobApplications(db *gorm.DB, jobID string) ([]dto.ApplicationView, error) {
	apps, err := s.applicationRepo.FindByJob(db, jobID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return toApplicationViews(apps), nil
}

// notifyStatus дублирует событие ленты письмом. Как и для выбора,
// отказ почты не ломает переход статуса.
func (s *applicationService) notifyStatus(db *gorm.DB, app *models.Application) {
	user, err := s.userRepo.FindByID(db, app.UserID)
	if err != nil {
		logger.Warn("status notice skipped, user lookup failed", "user_id", app.UserID, "error", err)
		return
	}

	jobTitle := missingJobTitle
	if job, err := s.jobRepo.FindByID(db, app.JobID); err == nil {
		jobTitle = job.Title
	}
	message := notificationMessage(app.StatusID, jobTitle)

	go func() {
		if err := s.mailer.SendStatusNotice(user.Email, user.Name, jobTitle, message); err != nil {
			logger.Warn("failed to send status notice", "user_id", user.ID, "error", err)
		}
	}()
}

// notifySelected отправляет письмо выбранному кандидату.
// Отказ почты не ломает переход статуса - только пишется в лог.
func (s *applicationService) notifySelected(db *gorm.DB, app *models.Application) {
	user, err := s.userRepo.FindByID(db, app.UserID)
	if err != nil {
		logger.Warn("selection notice skipped, user lookup failed", "user_id", app.UserID, "error", err)
		return
	}

	jobTitle := missingJobTitle
	companyName := ""
	if job, err := s.jobRepo.FindByID(db, app.JobID); err == nil {
		jobTitle = job.Title
		companyName = job.CompanyName
	}

	go func() {
		if err := s.mailer.SendSelectionNotice(user.Email, user.Name, jobTitle, companyName); err != nil {
			logger.Warn("failed to send selection notice", "user_id", user.ID, "error", err)
		}
	}()
}

func toApplicationView(app *models.Application) dto.ApplicationView {
	return dto.ApplicationView{
		ID:        app.ID,
		JobID:     app.JobID,
		UserID:    app.UserID,
		StatusID:  app.StatusID,
		AppliedAt: app.AppliedAt,
		ViewedAt:  app.ViewedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

func toApplicationViews(apps []models.Application) []dto.ApplicationView {
	views := make([]dto.ApplicationView, 0, len(apps))
	for i := range apps {
		views = append(views, toApplicationView(&apps[i]))
	}
	return views
}
