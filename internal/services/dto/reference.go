package dto

// --- Reference Data Requests (админские) ---

type CreateReferenceRequest struct {
	LegacyID int    `json:"legacyId" validate:"required,min=1"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Country  string `json:"country,omitempty" validate:"omitempty,max=100"` // только для locations
}

type UpdateReferenceRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
}
