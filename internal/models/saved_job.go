package models

import "time"

// SavedJob - закладка пользователя. Составной первичный ключ (user, job);
// повторное сохранение перезаписывает SavedAt, истории не остается.
type SavedJob struct {
	UserID  string    `gorm:"primaryKey"`
	JobID   string    `gorm:"primaryKey"`
	SavedAt time.Time `gorm:"not null"`
}
