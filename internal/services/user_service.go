package services

import (
	"errors"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	Create(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserView, error)
	Get(db *gorm.DB, userID string, withStats bool) (*dto.UserView, error)
	Update(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserView, error)
	Delete(db *gorm.DB, userID string) error
	Authenticate(db *gorm.DB, email, password string) (string, *dto.UserView, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserView, error) {
	if !models.IsValidUserRole(req.Role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,

		Headline:    req.Headline,
		LocationID:  req.LocationID,
		DomainID:    req.DomainID,
		LinkedinURL: req.LinkedinURL,
		ResumeURL:   req.ResumeURL,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StoreError(err)
	}

	view := toUserView(user, false)
	return &view, nil
}

func (s *userService) Get(db *gorm.DB, userID string, withStats bool) (*dto.UserView, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	view := toUserView(user, withStats)
	return &view, nil
}

// Update - частичная перезапись; id из payload отбрасывается
func (s *userService) Update(db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserView, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Headline != nil {
		fields["headline"] = *req.Headline
	}
	if req.LocationID != nil {
		fields["location_id"] = *req.LocationID
	}
	if req.DomainID != nil {
		fields["domain_id"] = *req.DomainID
	}
	if req.LinkedinURL != nil {
		fields["linkedin_url"] = *req.LinkedinURL
	}
	if req.ResumeURL != nil {
		fields["resume_url"] = *req.ResumeURL
	}

	if len(fields) == 0 {
		return nil, apperrors.ValidationError("No updatable fields in payload")
	}

	user, err := s.userRepo.UpdateFields(db, userID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	view := toUserView(user, false)
	return &view, nil
}

func (s *userService) Delete(db *gorm.DB, userID string) error {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.StoreError(err)
	}
	if err := s.userRepo.Delete(db, userID); err != nil {
		return apperrors.StoreError(err)
	}
	return nil
}

// Authenticate проверяет учетные данные и выдает JWT.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
func (s *userService) Authenticate(db *gorm.DB, email, password string) (string, *dto.UserView, error) {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return "", nil, apperrors.StoreError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, apperrors.InternalError(err)
	}

	view := toUserView(user, false)
	return token, &view, nil
}

// toUserView: сводка профиля считается только для соискателей
func toUserView(user *models.User, withStats bool) dto.UserView {
	view := dto.UserView{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,

		Headline:    user.Headline,
		LocationID:  user.LocationID,
		DomainID:    user.DomainID,
		LinkedinURL: user.LinkedinURL,
		ResumeURL:   user.ResumeURL,

		NotificationLastViewedAt: user.NotificationLastViewedAt,
	}
	if withStats && user.Role == models.UserRoleJobSeeker {
		stats := user.BuildProfileStats()
		view.ProfileStats = &stats
	}
	return view
}
