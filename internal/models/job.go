package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	CompanyName string
	Salary      *string
	PostedAt    time.Time `gorm:"index;not null"`

	// Скалярные ссылки на справочники. Строка может содержать
	// как uuid, так и числовой legacy id в строковом виде.
	LocationID        string `gorm:"index"`
	DomainID          string `gorm:"index"`
	JobTypeID         string `gorm:"index"`
	WorkplaceTypeID   string
	ExperienceLevelID string `gorm:"index"`

	// Владелец: рекрутер либо сотрудник, но не оба сразу
	RecruiterID *string `gorm:"index"`
	EmployeeID  *string `gorm:"index"`

	IsReferral bool `gorm:"index;default:false"`
	JobLink    *string
	Vacancies  int            `gorm:"default:1"`
	Benefits   datatypes.JSON `gorm:"type:jsonb"`
}
