package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const missingJobTitle = "a job"

type NotificationService interface {
	GetUserFeed(db *gorm.DB, userID string) (*dto.NotificationFeedResponse, error)
	GetUnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error)
	MarkFeedViewed(db *gorm.DB, userID string) error
}

type notificationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository

	now func() time.Time
}

func NewNotificationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
) NotificationService {
	return &notificationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

// GetUserFeed собирает ленту из откликов пользователя. Хранимых
// уведомлений нет: событием считается отклик в статусе 2, 3 или 4,
// остальные статусы (и неизвестные) молча пропускаются.
func (s *notificationService) GetUserFeed(db *gorm.DB, userID string) (*dto.NotificationFeedResponse, error) {
	apps, err := s.applicationRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	notifying := apps[:0]
	jobIDs := make([]string, 0, len(apps))
	for _, app := range apps {
		if !isNotifyingStatus(app.StatusID) {
			continue
		}
		notifying = append(notifying, app)
		jobIDs = append(jobIDs, app.JobID)
	}

	jobs, err := s.jobRepo.FindByIDs(db, jobIDs)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	items := make([]dto.NotificationItem, 0, len(notifying))
	for _, app := range notifying {
		// Отклик на удаленную вакансию остается в ленте с заглушкой
		title := missingJobTitle
		if job, ok := jobs[app.JobID]; ok {
			title = job.Title
		}

		items = append(items, dto.NotificationItem{
			JobID:     app.JobID,
			JobTitle:  title,
			StatusID:  app.StatusID,
			Message:   notificationMessage(app.StatusID, title),
			Timestamp: s.notificationTimestamp(&app),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].JobID < items[j].JobID
		}
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	return &dto.NotificationFeedResponse{Notifications: items}, nil
}

// GetUnreadCount считает события новее отметки последнего просмотра.
// Пользователь без отметки видит все события как непрочитанные.
func (s *notificationService) GetUnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	feed, err := s.GetUserFeed(db, userID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, item := range feed.Notifications {
		if user.NotificationLastViewedAt == nil || item.Timestamp.After(*user.NotificationLastViewedAt) {
			count++
		}
	}

	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkFeedViewed двигает отметку просмотра на текущий момент
func (s *notificationService) MarkFeedViewed(db *gorm.DB, userID string) error {
	err := s.userRepo.SetNotificationLastViewed(db, userID, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.StoreError(err)
	}
	return nil
}

func isNotifyingStatus(statusID int) bool {
	switch statusID {
	case models.ApplicationStatusProfileViewed,
		models.ApplicationStatusNotSuitable,
		models.ApplicationStatusSelected:
		return true
	}
	return false
}

// Тексты зафиксированы контрактом клиента, не менять без согласования
func notificationMessage(statusID int, jobTitle string) string {
	switch statusID {
	case models.ApplicationStatusProfileViewed:
		return fmt.Sprintf("Your profile was viewed for the %s position.", jobTitle)
	case models.ApplicationStatusNotSuitable:
		return fmt.Sprintf("Your application for %s was reviewed. The company decided to move forward with other candidates at this time.", jobTitle)
	case models.ApplicationStatusSelected:
		return fmt.Sprintf("Congratulations! You have been selected for the %s position.", jobTitle)
	}
	return fmt.Sprintf("Your application status for %s has been updated.", jobTitle)
}

// Временная метка события: updatedAt, иначе viewedAt, иначе appliedAt,
// иначе текущее время (у легаси-записей все три могут отсутствовать)
func (s *notificationService) notificationTimestamp(app *models.Application) time.Time {
	switch {
	case app.UpdatedAt != nil:
		return *app.UpdatedAt
	case app.ViewedAt != nil:
		return *app.ViewedAt
	case app.AppliedAt != nil:
		return *app.AppliedAt
	}
	return s.now()
}
