package services

import (
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedJobFixture(jobs []models.Job) (*savedJobService, *fakeSavedJobRepo) {
	jobRepo := &fakeJobRepo{jobs: jobs}
	savedRepo := newFakeSavedJobRepo()
	refRepo := &fakeReferenceRepo{data: testReferenceData()}
	svc := NewSavedJobService(savedRepo, jobRepo, refRepo).(*savedJobService)
	return svc, savedRepo
}

func TestToggle_SaveThenUnsaveThenSave(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}, Title: "Backend Engineer"}}
	svc, savedRepo := newSavedJobFixture(jobs)

	first, err := svc.Toggle(nil, "u1", "j1")
	require.NoError(t, err)
	assert.True(t, first.Saved)

	second, err := svc.Toggle(nil, "u1", "j1")
	require.NoError(t, err)
	assert.False(t, second.Saved)

	third, err := svc.Toggle(nil, "u1", "j1")
	require.NoError(t, err)
	assert.True(t, third.Saved, "save -> unsave -> save returns to the saved state")

	exists, err := savedRepo.Exists(nil, "u1", "j1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestToggle_ResavingResetsSavedAt(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}}}
	svc, savedRepo := newSavedJobFixture(jobs)

	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return early }
	_, err := svc.Toggle(nil, "u1", "j1")
	require.NoError(t, err)

	_, err = svc.Toggle(nil, "u1", "j1") // unsave
	require.NoError(t, err)

	svc.now = func() time.Time { return late }
	_, err = svc.Toggle(nil, "u1", "j1") // save заново
	require.NoError(t, err)

	saved, err := savedRepo.FindByUser(nil, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, late, saved[0].SavedAt, "no history: savedAt reflects the latest save")
}

func TestToggle_MissingJob(t *testing.T) {
	svc, _ := newSavedJobFixture(nil)

	_, err := svc.Toggle(nil, "u1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestList_IDsOnlyByDefault(t *testing.T) {
	jobs := []models.Job{{BaseModel: models.BaseModel{ID: "j1"}, Title: "Backend Engineer"}}
	svc, _ := newSavedJobFixture(jobs)

	_, err := svc.Toggle(nil, "u1", "j1")
	require.NoError(t, err)

	resp, err := svc.List(nil, "u1", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"j1"}, resp.JobIDs)
	assert.Empty(t, resp.Jobs)
}

func TestList_WithDetailsSkipsDeletedJobs(t *testing.T) {
	job := mkJob("j1", "Backend Engineer", time.Now())
	svc, savedRepo := newSavedJobFixture([]models.Job{job})

	_, err := svc.Toggle(nil, "u1", "j1")
	require.NoError(t, err)
	// Закладка на уже удаленную вакансию
	require.NoError(t, savedRepo.Upsert(nil, &models.SavedJob{UserID: "u1", JobID: "gone", SavedAt: time.Now().Add(time.Hour)}))

	resp, err := svc.List(nil, "u1", true)
	require.NoError(t, err)

	assert.Len(t, resp.JobIDs, 2, "ids include dangling bookmarks")
	require.Len(t, resp.Jobs, 1, "details only for jobs that still exist")
	assert.Equal(t, "j1", resp.Jobs[0].ID)
	assert.Equal(t, "Bangalore", resp.Jobs[0].Location)
}
