package dto

import "time"

// NotificationItem - одно событие ленты, производное от статуса отклика.
// Записи не хранятся: лента каждый раз собирается из Application.
type NotificationItem struct {
	JobID     string    `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	StatusID  int       `json:"statusId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type NotificationFeedResponse struct {
	Notifications []NotificationItem `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int `json:"unread_count"`
}
