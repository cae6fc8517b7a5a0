package services

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Плейсхолдер для неразрешимых справочных ссылок в списках
const unresolvedPlaceholder = "N/A"

const (
	dashboardFetchCap = 50
	dashboardFeedSize = 10
)

type JobQueryService interface {
	ListJobs(db *gorm.DB, req *dto.JobQueryRequest) (*dto.JobListResponse, error)
	DashboardJobs(db *gorm.DB, domainID string, postedWithinDays int) (*dto.DashboardResponse, error)
	GetJob(db *gorm.DB, jobID string, fresh bool) (*dto.JobDetailResponse, error)
}

type jobQueryService struct {
	jobRepo         repositories.JobRepository
	applicationRepo repositories.ApplicationRepository
	referenceRepo   repositories.ReferenceRepository

	now func() time.Time
}

func NewJobQueryService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	referenceRepo repositories.ReferenceRepository,
) JobQueryService {
	return &jobQueryService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		referenceRepo:   referenceRepo,
		now:             time.Now,
	}
}

// ================================
// Планировщик запроса
// ================================

// jobQueryPlan - итог классификации фильтров: что уходит в хранилище,
// а что считается в памяти после выборки.
type jobQueryPlan struct {
	criteria repositories.JobQueryCriteria

	// inMemory: присутствует сложный фильтр или поисковая строка,
	// поэтому сортировка/лимит выполняются после выборки
	inMemory bool

	postedWithinDays int
	searchTerm       string
	limit            int
}

// planJobQuery классифицирует фильтры запроса.
// Equality- и set-предикаты отдаются хранилищу; date-range и поиск
// по подстроке - никогда (их сочетание с остальными потребовало бы
// составных индексов). Нативная сортировка по дате запрашивается
// только когда сложных фильтров нет.
func planJobQuery(req *dto.JobQueryRequest) jobQueryPlan {
	criteria := repositories.JobQueryCriteria{
		IsReferral:        req.IsReferral,
		RecruiterID:       req.RecruiterID,
		EmployeeID:        req.EmployeeID,
		ExperienceLevelID: req.ExperienceLevelID,
		LocationIDs:       req.LocationIDs,
		DomainIDs:         req.DomainIDs,
		JobTypeIDs:        req.JobTypeIDs,
	}

	complexFilter := req.RecruiterID != "" ||
		req.EmployeeID != "" ||
		req.ExperienceLevelID != "" ||
		len(req.LocationIDs) > 0 ||
		len(req.DomainIDs) > 0 ||
		len(req.JobTypeIDs) > 0

	inMemory := complexFilter || req.SearchTerm != ""

	if !inMemory {
		criteria.OrderByPostedAt = true
		criteria.Limit = req.Limit
	}

	return jobQueryPlan{
		criteria:         criteria,
		inMemory:         inMemory,
		postedWithinDays: req.PostedWithinDays,
		searchTerm:       req.SearchTerm,
		limit:            req.Limit,
	}
}

// ================================
// Списочный запрос
// ================================

// ListJobs - конвейер: (1) выборка с store-side фильтрами, (2) денормализация,
// (3) свертка счетчиков откликов, (4) date-range фильтр, (5) поиск по названию,
// (6) сортировка по дате убыванием, (7) усечение по limit.
// Порядок шагов - жесткое требование: фильтрация до денормализации могла бы
// менять результат там, где справочные ссылки влияют на исход фильтра.
func (s *jobQueryService) ListJobs(db *gorm.DB, req *dto.JobQueryRequest) (*dto.JobListResponse, error) {
	plan := planJobQuery(req)

	var (
		jobs    []models.Job
		refData *repositories.ReferenceData
		apps    []models.Application

		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	// Fan-out: три независимых чтения, подвисаем до завершения всех
	wg.Add(3)
	go func() {
		defer wg.Done()
		result, err := s.jobRepo.Query(db, plan.criteria)
		if err != nil {
			fail(err)
			return
		}
		jobs = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.referenceRepo.GetAll(db)
		if err != nil {
			fail(err)
			return
		}
		refData = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.applicationRepo.FindAll(db)
		if err != nil {
			fail(err)
			return
		}
		apps = result
	}()
	wg.Wait()

	// Частичных результатов не бывает: любой отказ валит весь ответ
	if len(errs) > 0 {
		return nil, apperrors.StoreError(errs[0])
	}

	lookup := refData.BuildLookup()
	counts := foldApplicantCounts(apps)

	views := make([]dto.JobView, 0, len(jobs))
	for _, job := range jobs {
		view := buildJobView(&job, lookup, unresolvedPlaceholder)
		view.ApplicantCount = counts[job.ID].total
		view.SelectedApplicantCount = counts[job.ID].selected
		views = append(views, view)
	}

	views = s.filterPostedWithin(views, plan.postedWithinDays)
	views = filterBySearchTerm(views, plan.searchTerm)
	sortByPostedAtDesc(views)

	if plan.inMemory && plan.limit > 0 && len(views) > plan.limit {
		views = views[:plan.limit]
	}

	return &dto.JobListResponse{
		Jobs:      views,
		Cacheable: isCacheableScope(req),
	}, nil
}

// ================================
// Дашборд
// ================================

// DashboardJobs - отдельный путь: две независимые выборки (обычные и
// реферальные вакансии), каждая с потолком 50 на стороне хранилища,
// денормализация только локации и типа, усечение каждой ленты до 10.
func (s *jobQueryService) DashboardJobs(db *gorm.DB, domainID string, postedWithinDays int) (*dto.DashboardResponse, error) {
	var (
		recommended []models.Job
		referral    []models.Job
		refData     *repositories.ReferenceData

		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	criteriaFor := func(isReferral bool) repositories.JobQueryCriteria {
		flag := isReferral
		criteria := repositories.JobQueryCriteria{
			IsReferral: &flag,
			Limit:      dashboardFetchCap,
		}
		if domainID != "" {
			criteria.DomainIDs = []string{domainID}
		}
		return criteria
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		result, err := s.jobRepo.Query(db, criteriaFor(false))
		if err != nil {
			fail(err)
			return
		}
		recommended = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.jobRepo.Query(db, criteriaFor(true))
		if err != nil {
			fail(err)
			return
		}
		referral = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.referenceRepo.GetAll(db)
		if err != nil {
			fail(err)
			return
		}
		refData = result
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, apperrors.StoreError(errs[0])
	}

	lookup := refData.BuildLookup()

	buildFeed := func(jobs []models.Job) []dto.JobView {
		views := make([]dto.JobView, 0, len(jobs))
		for _, job := range jobs {
			view := buildDashboardView(&job, lookup)
			views = append(views, view)
		}
		views = s.filterPostedWithin(views, postedWithinDays)
		sortByPostedAtDesc(views)
		if len(views) > dashboardFeedSize {
			views = views[:dashboardFeedSize]
		}
		return views
	}

	return &dto.DashboardResponse{
		Recommended: buildFeed(recommended),
		Referral:    buildFeed(referral),
		Cacheable:   true,
	}, nil
}

// ================================
// Одиночная вакансия
// ================================

// GetJob резолвит пять справочных ссылок параллельно: домен по
// постоянному id, остальные четыре - по legacy-ссылке. Промахи дают
// пустую строку, никогда не ошибку. fresh подавляет кэшируемость
// (админский/редакторский сценарий).
func (s *jobQueryService) GetJob(db *gorm.DB, jobID string, fresh bool) (*dto.JobDetailResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	var (
		location, domain, jobType, workplaceType, experienceLevel string

		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		name, err := s.referenceRepo.ResolveLocation(db, job.LocationID)
		if err != nil {
			fail(err)
			return
		}
		location = name
	}()
	go func() {
		defer wg.Done()
		name, err := s.referenceRepo.ResolveDomainByID(db, job.DomainID)
		if err != nil {
			fail(err)
			return
		}
		domain = name
	}()
	go func() {
		defer wg.Done()
		name, err := s.referenceRepo.ResolveJobType(db, job.JobTypeID)
		if err != nil {
			fail(err)
			return
		}
		jobType = name
	}()
	go func() {
		defer wg.Done()
		name, err := s.referenceRepo.ResolveWorkplaceType(db, job.WorkplaceTypeID)
		if err != nil {
			fail(err)
			return
		}
		workplaceType = name
	}()
	go func() {
		defer wg.Done()
		name, err := s.referenceRepo.ResolveExperienceLevel(db, job.ExperienceLevelID)
		if err != nil {
			fail(err)
			return
		}
		experienceLevel = name
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, apperrors.StoreError(errs[0])
	}

	view := baseJobView(job)
	view.Location = location
	view.Domain = domain
	view.Type = jobType
	view.WorkplaceType = workplaceType
	view.ExperienceLevel = experienceLevel

	return &dto.JobDetailResponse{
		Job:       view,
		Cacheable: !fresh,
	}, nil
}

// ================================
// Конвейерные шаги
// ================================

type applicantCount struct {
	total    int
	selected int
}

// foldApplicantCounts - свертка полного скана откликов в счетчики по вакансиям
func foldApplicantCounts(apps []models.Application) map[string]applicantCount {
	counts := make(map[string]applicantCount)
	for _, app := range apps {
		c := counts[app.JobID]
		c.total++
		if app.StatusID == models.ApplicationStatusSelected {
			c.selected++
		}
		counts[app.JobID] = c
	}
	return counts
}

// filterPostedWithin оставляет вакансии не старше N дней.
// Граница включается: вакансия, опубликованная ровно now-N дней, остается.
func (s *jobQueryService) filterPostedWithin(views []dto.JobView, days int) []dto.JobView {
	if days <= 0 {
		return views
	}

	cutoff := s.now().AddDate(0, 0, -days)
	filtered := views[:0]
	for _, view := range views {
		if !view.PostedAt.Before(cutoff) {
			filtered = append(filtered, view)
		}
	}
	return filtered
}

// filterBySearchTerm - регистронезависимый поиск подстроки в названии
func filterBySearchTerm(views []dto.JobView, term string) []dto.JobView {
	if term == "" {
		return views
	}

	needle := strings.ToLower(term)
	filtered := views[:0]
	for _, view := range views {
		if strings.Contains(strings.ToLower(view.Title), needle) {
			filtered = append(filtered, view)
		}
	}
	return filtered
}

// sortByPostedAtDesc сортирует по дате публикации убыванием.
// Tie-break по id, чтобы порядок был воспроизводим между запросами.
func sortByPostedAtDesc(views []dto.JobView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].PostedAt.Equal(views[j].PostedAt) {
			return views[i].ID < views[j].ID
		}
		return views[i].PostedAt.After(views[j].PostedAt)
	})
}

// isCacheableScope: management-scoped запросы всегда читаются свежими
func isCacheableScope(req *dto.JobQueryRequest) bool {
	return req.RecruiterID == "" && req.EmployeeID == "" && !req.AdminScoped
}

// ================================
// Сборка вью-моделей
// ================================

func baseJobView(job *models.Job) dto.JobView {
	return dto.JobView{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		CompanyName: job.CompanyName,
		Salary:      job.Salary,
		PostedAt:    job.PostedAt,
		RecruiterID: job.RecruiterID,
		EmployeeID:  job.EmployeeID,
		IsReferral:  job.IsReferral,
		JobLink:     job.JobLink,
		Vacancies:   job.Vacancies,
		Benefits:    decodeBenefits(job),
	}
}

// buildJobView денормализует все пять справочных ссылок
func buildJobView(job *models.Job, lookup repositories.ReferenceLookup, placeholder string) dto.JobView {
	view := baseJobView(job)
	view.Location = lookupOr(lookup.Locations, job.LocationID, placeholder)
	view.Domain = lookupOr(lookup.Domains, job.DomainID, placeholder)
	view.Type = lookupOr(lookup.JobTypes, job.JobTypeID, placeholder)
	view.WorkplaceType = lookupOr(lookup.WorkplaceTypes, job.WorkplaceTypeID, placeholder)
	view.ExperienceLevel = lookupOr(lookup.ExperienceLevels, job.ExperienceLevelID, placeholder)
	return view
}

// buildDashboardView денормализует только локацию и тип занятости
func buildDashboardView(job *models.Job, lookup repositories.ReferenceLookup) dto.JobView {
	view := baseJobView(job)
	view.Location = lookupOr(lookup.Locations, job.LocationID, unresolvedPlaceholder)
	view.Type = lookupOr(lookup.JobTypes, job.JobTypeID, unresolvedPlaceholder)
	return view
}

func lookupOr(table map[string]string, ref, fallback string) string {
	if name, ok := table[ref]; ok && name != "" {
		return name
	}
	return fallback
}

func decodeBenefits(job *models.Job) []string {
	if len(job.Benefits) == 0 {
		return nil
	}
	var benefits []string
	if err := json.Unmarshal(job.Benefits, &benefits); err != nil {
		return nil
	}
	return benefits
}
