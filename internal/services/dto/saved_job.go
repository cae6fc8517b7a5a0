package dto

// SavedJobsResponse - закладки пользователя в порядке сохранения.
// При details=false заполняется только JobIDs, иначе - полные вью-модели.
type SavedJobsResponse struct {
	JobIDs []string  `json:"jobIds,omitempty"`
	Jobs   []JobView `json:"jobs,omitempty"`
}

// ToggleSavedResponse сообщает итоговое состояние закладки
type ToggleSavedResponse struct {
	Saved bool `json:"saved"`
}
