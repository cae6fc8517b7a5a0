package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// inMemoryFetchCap - потолок выборки, когда сортировка и часть фильтров
// выполняются в памяти. Комбинация range-предикатов и equality/set-предикатов
// требовала бы составных индексов, от которых движок сознательно не зависит.
const inMemoryFetchCap = 500

// JobQueryCriteria - предикаты, которые отдаются хранилищу как есть.
// Date-range и text-search сюда не входят: они всегда считаются в памяти.
type JobQueryCriteria struct {
	IsReferral        *bool
	RecruiterID       string
	EmployeeID        string
	ExperienceLevelID string
	LocationIDs       []string
	DomainIDs         []string
	JobTypeIDs        []string

	// OrderByPostedAt запрашивает нативную сортировку у хранилища.
	// Допустимо только когда нет сложных фильтров.
	OrderByPostedAt bool
	Limit           int
}

type JobRepository interface {
	Query(db *gorm.DB, criteria JobQueryCriteria) ([]models.Job, error)
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindByIDs(db *gorm.DB, ids []string) (map[string]models.Job, error)
	Create(db *gorm.DB, job *models.Job) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) (*models.Job, error)
	Delete(db *gorm.DB, id string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Query(db *gorm.DB, criteria JobQueryCriteria) ([]models.Job, error) {
	query := db.Model(&models.Job{})

	if criteria.IsReferral != nil {
		query = query.Where("is_referral = ?", *criteria.IsReferral)
	}
	if criteria.RecruiterID != "" {
		query = query.Where("recruiter_id = ?", criteria.RecruiterID)
	}
	if criteria.EmployeeID != "" {
		query = query.Where("employee_id = ?", criteria.EmployeeID)
	}
	if criteria.ExperienceLevelID != "" {
		query = query.Where("experience_level_id = ?", criteria.ExperienceLevelID)
	}
	if len(criteria.LocationIDs) > 0 {
		query = query.Where("location_id IN ?", criteria.LocationIDs)
	}
	if len(criteria.DomainIDs) > 0 {
		query = query.Where("domain_id IN ?", criteria.DomainIDs)
	}
	if len(criteria.JobTypeIDs) > 0 {
		query = query.Where("job_type_id IN ?", criteria.JobTypeIDs)
	}

	if criteria.OrderByPostedAt {
		query = query.Order("posted_at DESC")
		if criteria.Limit > 0 {
			query = query.Limit(criteria.Limit)
		}
	} else {
		// Без нативной сортировки: добираем до потолка и сортируем в памяти
		fetchCap := inMemoryFetchCap
		if criteria.Limit > 0 && criteria.Limit < fetchCap {
			fetchCap = criteria.Limit
		}
		query = query.Limit(fetchCap)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) (map[string]models.Job, error) {
	result := make(map[string]models.Job, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var jobs []models.Job
	if err := db.Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}
	for _, job := range jobs {
		result[job.ID] = job
	}
	return result, nil
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := db.Model(&job).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Job{}, "id = ?", id).Error
}
