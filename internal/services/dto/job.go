package dto

import "time"

// --- Job Requests ---

// JobQueryRequest - мультифильтр списка вакансий.
// Имена полей зафиксированы контрактом вызывающей стороны.
type JobQueryRequest struct {
	IsReferral        *bool    `form:"isReferral"`
	RecruiterID       string   `form:"recruiterId"`
	EmployeeID        string   `form:"employeeId"`
	ExperienceLevelID string   `form:"experienceLevelId"`
	LocationIDs       []string `form:"locationIds"`
	DomainIDs         []string `form:"domainIds"`
	JobTypeIDs        []string `form:"jobTypeIds"`
	PostedWithinDays  int      `form:"postedWithinDays" validate:"omitempty,min=0"`
	SearchTerm        string   `form:"search"`
	Limit             int      `form:"limit" validate:"omitempty,min=0,max=500"`
	AdminScoped       bool     `form:"admin"`
}

type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=10000"`
	CompanyName string  `json:"companyName" validate:"omitempty,max=200"`
	Salary      *string `json:"salary"`
	PostedAt    *time.Time `json:"postedAt"` // по умолчанию - время создания

	LocationID        string `json:"locationId"`
	DomainID          string `json:"domainId"`
	JobTypeID         string `json:"jobTypeId"`
	WorkplaceTypeID   string `json:"workplaceTypeId"`
	ExperienceLevelID string `json:"experienceLevelId"`

	// Владелец: ровно один из двух
	RecruiterID *string `json:"recruiterId"`
	EmployeeID  *string `json:"employeeId"`

	IsReferral bool     `json:"isReferral"`
	JobLink    *string  `json:"jobLink" validate:"omitempty,url"`
	Vacancies  int      `json:"vacancies" validate:"omitempty,min=1"`
	Benefits   []string `json:"benefits"`
}

// UpdateJobRequest - частичная перезапись. Поле id из payload отбрасывается
// сервисом до применения, чтобы идентификатор нельзя было подменить.
type UpdateJobRequest struct {
	ID          *string `json:"id,omitempty"` // игнорируется
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	CompanyName *string `json:"companyName,omitempty"`
	Salary      *string `json:"salary,omitempty"`

	LocationID        *string `json:"locationId,omitempty"`
	DomainID          *string `json:"domainId,omitempty"`
	JobTypeID         *string `json:"jobTypeId,omitempty"`
	WorkplaceTypeID   *string `json:"workplaceTypeId,omitempty"`
	ExperienceLevelID *string `json:"experienceLevelId,omitempty"`

	IsReferral *bool    `json:"isReferral,omitempty"`
	JobLink    *string  `json:"jobLink,omitempty" validate:"omitempty,url"`
	Vacancies  *int     `json:"vacancies,omitempty" validate:"omitempty,min=1"`
	Benefits   []string `json:"benefits,omitempty"`
}

// --- Job Responses ---

// JobView - денормализованная вакансия. Каждое справочное поле - это
// либо имя сущности, либо плейсхолдер "N/A"; никогда не null.
type JobView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CompanyName string    `json:"companyName"`
	Salary      *string   `json:"salary,omitempty"`
	PostedAt    time.Time `json:"postedAt"`

	Location        string `json:"location"`
	Domain          string `json:"domain"`
	Type            string `json:"type"`
	WorkplaceType   string `json:"workplaceType"`
	ExperienceLevel string `json:"experienceLevel"`

	RecruiterID *string  `json:"recruiterId,omitempty"`
	EmployeeID  *string  `json:"employeeId,omitempty"`
	IsReferral  bool     `json:"isReferral"`
	JobLink     *string  `json:"jobLink,omitempty"`
	Vacancies   int      `json:"vacancies"`
	Benefits    []string `json:"benefits,omitempty"`

	ApplicantCount         int `json:"applicantCount"`
	SelectedApplicantCount int `json:"selectedApplicantCount"`
}

// JobListResponse - результат движка запросов.
// Cacheable не сериализуется: хендлер превращает его в Cache-Control.
type JobListResponse struct {
	Jobs      []JobView `json:"jobs"`
	Cacheable bool      `json:"-"`
}

// DashboardResponse - две независимые ленты дашборда
type DashboardResponse struct {
	Recommended []JobView `json:"recommended"`
	Referral    []JobView `json:"referral"`
	Cacheable   bool      `json:"-"`
}

type JobDetailResponse struct {
	Job       JobView `json:"job"`
	Cacheable bool    `json:"-"`
}
