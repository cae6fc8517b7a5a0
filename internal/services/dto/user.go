package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// --- User Requests ---

type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone" validate:"omitempty,max=20"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     models.UserRole `json:"role" validate:"required,is-user-role"`

	Headline    *string `json:"headline,omitempty"`
	LocationID  *string `json:"locationId,omitempty"`
	DomainID    *string `json:"domainId,omitempty"`
	LinkedinURL *string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	ResumeURL   *string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
}

// UpdateUserRequest - частичная перезапись; id из payload отбрасывается
type UpdateUserRequest struct {
	ID          *string `json:"id,omitempty"` // игнорируется
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Headline    *string `json:"headline,omitempty"`
	LocationID  *string `json:"locationId,omitempty"`
	DomainID    *string `json:"domainId,omitempty"`
	LinkedinURL *string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	ResumeURL   *string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
}

// --- User Responses ---

type UserView struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Phone string          `json:"phone,omitempty"`
	Role  models.UserRole `json:"role"`

	Headline    *string `json:"headline,omitempty"`
	LocationID  *string `json:"locationId,omitempty"`
	DomainID    *string `json:"domainId,omitempty"`
	LinkedinURL *string `json:"linkedinUrl,omitempty"`
	ResumeURL   *string `json:"resumeUrl,omitempty"`

	NotificationLastViewedAt *time.Time `json:"notificationLastViewedAt,omitempty"`

	// Заполняется только по запросу (?stats=true) и только для соискателей
	ProfileStats *models.ProfileStats `json:"profileStats,omitempty"`
}
