package models

// Справочные сущности: маленькие, почти статичные коллекции.
// У каждой два идентификатора: постоянный uuid и числовой legacy id,
// на который ссылаются старые записи вакансий и пользователей.

type Location struct {
	BaseModel
	LegacyID int    `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
	Country  string
}

type Domain struct {
	BaseModel
	LegacyID int    `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
}

type JobType struct {
	BaseModel
	LegacyID int    `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
}

type WorkplaceType struct {
	BaseModel
	LegacyID int    `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
}

type ExperienceLevel struct {
	BaseModel
	LegacyID int    `gorm:"uniqueIndex;not null"`
	Name     string `gorm:"not null"`
}

// Имена справочных коллекций (используются в роутах и кэше)
const (
	ReferenceKindLocation        = "locations"
	ReferenceKindDomain          = "domains"
	ReferenceKindJobType         = "job-types"
	ReferenceKindWorkplaceType   = "workplace-types"
	ReferenceKindExperienceLevel = "experience-levels"
)
