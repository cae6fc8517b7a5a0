package services

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"

	"gorm.io/gorm"
)

// Репозитории-фейки работают в памяти и воспроизводят контракт
// хранилища: фильтры, нативную сортировку и потолки выборки.

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs []models.Job

	lastCriteria *repositories.JobQueryCriteria
	queryErr     error
}

func (f *fakeJobRepo) Query(_ *gorm.DB, criteria repositories.JobQueryCriteria) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queryErr != nil {
		return nil, f.queryErr
	}
	c := criteria
	f.lastCriteria = &c

	var result []models.Job
	for _, job := range f.jobs {
		if criteria.IsReferral != nil && job.IsReferral != *criteria.IsReferral {
			continue
		}
		if criteria.RecruiterID != "" && (job.RecruiterID == nil || *job.RecruiterID != criteria.RecruiterID) {
			continue
		}
		if criteria.EmployeeID != "" && (job.EmployeeID == nil || *job.EmployeeID != criteria.EmployeeID) {
			continue
		}
		if criteria.ExperienceLevelID != "" && job.ExperienceLevelID != criteria.ExperienceLevelID {
			continue
		}
		if len(criteria.LocationIDs) > 0 && !containsString(criteria.LocationIDs, job.LocationID) {
			continue
		}
		if len(criteria.DomainIDs) > 0 && !containsString(criteria.DomainIDs, job.DomainID) {
			continue
		}
		if len(criteria.JobTypeIDs) > 0 && !containsString(criteria.JobTypeIDs, job.JobTypeID) {
			continue
		}
		result = append(result, job)
	}

	if criteria.OrderByPostedAt {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PostedAt.After(result[j].PostedAt)
		})
	}
	if criteria.Limit > 0 && len(result) > criteria.Limit {
		result = result[:criteria.Limit]
	}
	return result, nil
}

func (f *fakeJobRepo) FindByID(_ *gorm.DB, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			job := f.jobs[i]
			return &job, nil
		}
	}
	return nil, repositories.ErrJobNotFound
}

func (f *fakeJobRepo) FindByIDs(_ *gorm.DB, ids []string) (map[string]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[string]models.Job, len(ids))
	for _, id := range ids {
		for i := range f.jobs {
			if f.jobs[i].ID == id {
				result[id] = f.jobs[i]
				break
			}
		}
	}
	return result, nil
}

func (f *fakeJobRepo) Create(_ *gorm.DB, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == "" {
		job.ID = "job-" + strconv.Itoa(len(f.jobs)+1)
	}
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobRepo) UpdateFields(_ *gorm.DB, id string, fields map[string]interface{}) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			if title, ok := fields["title"].(string); ok {
				f.jobs[i].Title = title
			}
			job := f.jobs[i]
			return &job, nil
		}
	}
	return nil, repositories.ErrJobNotFound
}

func (f *fakeJobRepo) Delete(_ *gorm.DB, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.jobs[:0]
	for _, job := range f.jobs {
		if job.ID != id {
			kept = append(kept, job)
		}
	}
	f.jobs = kept
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps []models.Application

	failAll bool
}

func (f *fakeApplicationRepo) Create(_ *gorm.DB, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.ID == app.ID {
			return repositories.ErrApplicationExists
		}
	}
	f.apps = append(f.apps, *app)
	return nil
}

func (f *fakeApplicationRepo) FindByID(_ *gorm.DB, id string) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.apps {
		if f.apps[i].ID == id {
			app := f.apps[i]
			return &app, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) FindByUser(_ *gorm.DB, userID string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Application
	for _, app := range f.apps {
		if app.UserID == userID {
			result = append(result, app)
		}
	}
	return result, nil
}

func (f *fakeApplicationRepo) FindByJob(_ *gorm.DB, jobID string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Application
	for _, app := range f.apps {
		if app.JobID == jobID {
			result = append(result, app)
		}
	}
	return result, nil
}

func (f *fakeApplicationRepo) FindAll(_ *gorm.DB) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, gorm.ErrInvalidDB
	}
	return append([]models.Application(nil), f.apps...), nil
}

func (f *fakeApplicationRepo) Save(_ *gorm.DB, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.apps {
		if f.apps[i].ID == app.ID {
			f.apps[i] = *app
			return nil
		}
	}
	f.apps = append(f.apps, *app)
	return nil
}

func (f *fakeApplicationRepo) DeleteByJob(_ *gorm.DB, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.apps[:0]
	for _, app := range f.apps {
		if app.JobID != jobID {
			kept = append(kept, app)
		}
	}
	f.apps = kept
	return nil
}

func (f *fakeApplicationRepo) DeleteOrphaned(_ *gorm.DB) (int64, error) {
	return 0, nil
}

type fakeSavedJobRepo struct {
	mu      sync.Mutex
	entries map[string]models.SavedJob
}

func newFakeSavedJobRepo() *fakeSavedJobRepo {
	return &fakeSavedJobRepo{entries: make(map[string]models.SavedJob)}
}

func savedKey(userID, jobID string) string {
	return userID + "|" + jobID
}

func (f *fakeSavedJobRepo) Upsert(_ *gorm.DB, saved *models.SavedJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[savedKey(saved.UserID, saved.JobID)] = *saved
	return nil
}

func (f *fakeSavedJobRepo) Delete(_ *gorm.DB, userID, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, savedKey(userID, jobID))
	return nil
}

func (f *fakeSavedJobRepo) FindByUser(_ *gorm.DB, userID string) ([]models.SavedJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.SavedJob
	for _, entry := range f.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SavedAt.After(result[j].SavedAt)
	})
	return result, nil
}

func (f *fakeSavedJobRepo) Exists(_ *gorm.DB, userID, jobID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[savedKey(userID, jobID)]
	return ok, nil
}

func (f *fakeSavedJobRepo) DeleteByJob(_ *gorm.DB, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, entry := range f.entries {
		if entry.JobID == jobID {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeSavedJobRepo) DeleteOrphaned(_ *gorm.DB) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = "user-" + strconv.Itoa(len(f.users)+1)
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) UpdateFields(_ *gorm.DB, id string, fields map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	if name, ok := fields["name"].(string); ok {
		user.Name = name
	}
	f.users[id] = user
	return &user, nil
}

func (f *fakeUserRepo) Delete(_ *gorm.DB, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) SetNotificationLastViewed(_ *gorm.DB, userID string, viewedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.NotificationLastViewedAt = &viewedAt
	f.users[userID] = user
	return nil
}

// fakeReferenceRepo резолвит ссылки так же, как реальный репозиторий:
// числовая строка ищется по legacy id, иначе по uuid; промах - пустая строка.
type fakeReferenceRepo struct {
	data repositories.ReferenceData
}

func (f *fakeReferenceRepo) GetAll(_ *gorm.DB) (*repositories.ReferenceData, error) {
	data := f.data
	return &data, nil
}

func (f *fakeReferenceRepo) ResolveDomainByID(_ *gorm.DB, id string) (string, error) {
	for _, d := range f.data.Domains {
		if d.ID == id {
			return d.Name, nil
		}
	}
	return "", nil
}

func resolveFake(ref, id string, legacyID int, name string) (string, bool) {
	if numeric, err := strconv.Atoi(ref); err == nil {
		if numeric == legacyID {
			return name, true
		}
		return "", false
	}
	if ref == id {
		return name, true
	}
	return "", false
}

func (f *fakeReferenceRepo) ResolveLocation(_ *gorm.DB, ref string) (string, error) {
	for _, l := range f.data.Locations {
		if name, ok := resolveFake(ref, l.ID, l.LegacyID, l.Name); ok {
			return name, nil
		}
	}
	return "", nil
}

func (f *fakeReferenceRepo) ResolveJobType(_ *gorm.DB, ref string) (string, error) {
	for _, t := range f.data.JobTypes {
		if name, ok := resolveFake(ref, t.ID, t.LegacyID, t.Name); ok {
			return name, nil
		}
	}
	return "", nil
}

func (f *fakeReferenceRepo) ResolveWorkplaceType(_ *gorm.DB, ref string) (string, error) {
	for _, t := range f.data.WorkplaceTypes {
		if name, ok := resolveFake(ref, t.ID, t.LegacyID, t.Name); ok {
			return name, nil
		}
	}
	return "", nil
}

func (f *fakeReferenceRepo) ResolveExperienceLevel(_ *gorm.DB, ref string) (string, error) {
	for _, l := range f.data.ExperienceLevels {
		if name, ok := resolveFake(ref, l.ID, l.LegacyID, l.Name); ok {
			return name, nil
		}
	}
	return "", nil
}

func (f *fakeReferenceRepo) List(_ *gorm.DB, kind string) ([]repositories.ReferenceEntityView, error) {
	return nil, repositories.ErrUnknownReferenceKind
}

func (f *fakeReferenceRepo) CreateEntity(_ *gorm.DB, kind string, legacyID int, name, country string) (*repositories.ReferenceEntityView, error) {
	return nil, repositories.ErrUnknownReferenceKind
}

func (f *fakeReferenceRepo) UpdateEntity(_ *gorm.DB, kind, id string, fields map[string]interface{}) error {
	return repositories.ErrUnknownReferenceKind
}

func (f *fakeReferenceRepo) DeleteEntity(_ *gorm.DB, kind, id string) error {
	return repositories.ErrUnknownReferenceKind
}

type fakeSender struct {
	mu      sync.Mutex
	notices []string
}

func (f *fakeSender) SendStatusNotice(to, userName, jobTitle, statusMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, "status:"+to+":"+jobTitle)
	return nil
}

func (f *fakeSender) SendSelectionNotice(to, userName, jobTitle, companyName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, "selected:"+to+":"+jobTitle)
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
