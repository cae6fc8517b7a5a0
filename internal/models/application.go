package models

import "time"

// Application - отклик пользователя на вакансию.
// ID детерминированный: "<userID>_<jobID>", поэтому повторная подача
// на ту же вакансию превращается в конфликт ключа, а не во вторую запись.
type Application struct {
	ID     string `gorm:"primaryKey"`
	JobID  string `gorm:"not null;index;uniqueIndex:idx_applications_user_job,priority:2"`
	UserID string `gorm:"not null;index;uniqueIndex:idx_applications_user_job,priority:1"`

	StatusID int `gorm:"not null;default:1"`

	// Каждый timestamp ставится только когда происходит соответствующий переход
	AppliedAt *time.Time
	ViewedAt  *time.Time
	UpdatedAt *time.Time
}

// ApplicationKey строит детерминированный ключ отклика по паре (user, job)
func ApplicationKey(userID, jobID string) string {
	return userID + "_" + jobID
}
