package dto

import "time"

// --- Application Requests ---

type SetApplicationStatusRequest struct {
	StatusID int `json:"statusId" validate:"required,is-application-status"`
}

// --- Application Responses ---

type ApplicationView struct {
	ID        string     `json:"id"`
	JobID     string     `json:"jobId"`
	UserID    string     `json:"userId"`
	StatusID  int        `json:"statusId"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
	ViewedAt  *time.Time `json:"viewedAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
