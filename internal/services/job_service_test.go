package services

import (
	"errors"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newJobFixture(jobs []models.Job, apps []models.Application) (*jobService, *fakeJobRepo, *fakeApplicationRepo, *fakeSavedJobRepo) {
	jobRepo := &fakeJobRepo{jobs: jobs}
	appRepo := &fakeApplicationRepo{apps: apps}
	savedRepo := newFakeSavedJobRepo()
	svc := NewJobService(jobRepo, appRepo, savedRepo).(*jobService)
	// Фейки не знают транзакций, шаги выполняются напрямую
	svc.inTransaction = func(_ *gorm.DB, fn func(tx *gorm.DB) error) error {
		return fn(nil)
	}
	return svc, jobRepo, appRepo, savedRepo
}

func TestCreateJob_DefaultsPostedAtAndVacancies(t *testing.T) {
	svc, jobRepo, _, _ := newJobFixture(nil, nil)
	fixed := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	req := dto.CreateJobRequest{Title: "Backend Engineer"}
	view, err := svc.Create(nil, &req)
	require.NoError(t, err)

	assert.Equal(t, fixed, view.PostedAt)
	assert.Equal(t, 1, view.Vacancies)
	assert.Len(t, jobRepo.jobs, 1)
}

func TestCreateJob_BothOwnersRejected(t *testing.T) {
	svc, _, _, _ := newJobFixture(nil, nil)

	req := dto.CreateJobRequest{Title: "Backend Engineer"}
	recruiter := "r1"
	employee := "e1"
	req.RecruiterID = &recruiter
	req.EmployeeID = &employee

	_, err := svc.Create(nil, &req)
	assert.Error(t, err)
}

func TestUpdateJob_EmptyPayloadRejected(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}, Title: "Old"}}
	svc, _, _, _ := newJobFixture(jobs, nil)

	// id в payload игнорируется и не считается изменяемым полем
	other := "j2"
	_, err := svc.Update(nil, "j1", &dto.UpdateJobRequest{ID: &other})
	assert.Error(t, err)
}

func TestUpdateJob_PartialOverwrite(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}, Title: "Old"}}
	svc, _, _, _ := newJobFixture(jobs, nil)

	title := "New Title"
	view, err := svc.Update(nil, "j1", &dto.UpdateJobRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "New Title", view.Title)
	assert.Equal(t, "j1", view.ID)
}

func TestDeleteJob_CascadesApplicationsAndSavedJobs(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}}}
	apps := []models.Application{
		{ID: "u1_j1", JobID: "j1", UserID: "u1", StatusID: models.ApplicationStatusApplied},
		{ID: "u2_j1", JobID: "j1", UserID: "u2", StatusID: models.ApplicationStatusSelected},
		{ID: "u1_j2", JobID: "j2", UserID: "u1", StatusID: models.ApplicationStatusApplied},
	}
	svc, jobRepo, appRepo, savedRepo := newJobFixture(jobs, apps)
	require.NoError(t, savedRepo.Upsert(nil, &models.SavedJob{UserID: "u1", JobID: "j1", SavedAt: time.Now()}))

	require.NoError(t, svc.Delete(nil, "j1"))

	_, err := jobRepo.FindByID(nil, "j1")
	assert.Error(t, err, "job itself must be gone")

	remaining, err := appRepo.FindAll(nil)
	require.NoError(t, err)
	for _, app := range remaining {
		assert.NotEqual(t, "j1", app.JobID, "no application may reference the deleted job")
	}
	assert.Len(t, remaining, 1)

	exists, err := savedRepo.Exists(nil, "u1", "j1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteJob_TransactionFailureSurfacesStoreError(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}}}
	svc, _, _, _ := newJobFixture(jobs, nil)
	svc.inTransaction = func(_ *gorm.DB, _ func(tx *gorm.DB) error) error {
		return errors.New("deadlock")
	}

	err := svc.Delete(nil, "j1")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestDeleteJob_NotFound(t *testing.T) {
	svc, _, _, _ := newJobFixture(nil, nil)
	assert.ErrorIs(t, svc.Delete(nil, "missing"), apperrors.ErrJobNotFound)
}
