package models

import "time"

type User struct {
	BaseModel
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`

	// Необязательные поля профиля соискателя
	Headline    *string
	LocationID  *string
	DomainID    *string
	LinkedinURL *string
	ResumeURL   *string

	// High-water mark для подсчета непрочитанных уведомлений
	NotificationLastViewedAt *time.Time
}

// ProfileStats - производная сводка заполненности профиля.
// Не хранится в базе, вычисляется на лету для соискателей.
type ProfileStats struct {
	HasHeadline bool `json:"hasHeadline"`
	HasLocation bool `json:"hasLocation"`
	HasDomain   bool `json:"hasDomain"`
	HasLinkedin bool `json:"hasLinkedin"`
	HasResume   bool `json:"hasResume"`
}

// BuildProfileStats вычисляет сводку по заполненным секциям профиля
func (u *User) BuildProfileStats() ProfileStats {
	present := func(s *string) bool { return s != nil && *s != "" }
	return ProfileStats{
		HasHeadline: present(u.Headline),
		HasLocation: present(u.LocationID),
		HasDomain:   present(u.DomainID),
		HasLinkedin: present(u.LinkedinURL),
		HasResume:   present(u.ResumeURL),
	}
}
