package services

import (
	"strconv"
	"testing"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReferenceData() repositories.ReferenceData {
	return repositories.ReferenceData{
		Locations: []models.Location{
			{BaseModel: models.BaseModel{ID: "loc-uuid-1"}, LegacyID: 10, Name: "Bangalore", Country: "India"},
			{BaseModel: models.BaseModel{ID: "loc-uuid-2"}, LegacyID: 11, Name: "Berlin", Country: "Germany"},
		},
		Domains: []models.Domain{
			{BaseModel: models.BaseModel{ID: "dom-uuid-1"}, LegacyID: 20, Name: "Engineering"},
		},
		JobTypes: []models.JobType{
			{BaseModel: models.BaseModel{ID: "type-uuid-1"}, LegacyID: 30, Name: "Full-time"},
		},
		WorkplaceTypes: []models.WorkplaceType{
			{BaseModel: models.BaseModel{ID: "wp-uuid-1"}, LegacyID: 40, Name: "Remote"},
		},
		ExperienceLevels: []models.ExperienceLevel{
			{BaseModel: models.BaseModel{ID: "exp-uuid-1"}, LegacyID: 50, Name: "Senior"},
		},
	}
}

func newQueryFixture(jobs []models.Job, apps []models.Application) (*jobQueryService, *fakeJobRepo) {
	jobRepo := &fakeJobRepo{jobs: jobs}
	appRepo := &fakeApplicationRepo{apps: apps}
	refRepo := &fakeReferenceRepo{data: testReferenceData()}
	svc := NewJobQueryService(jobRepo, appRepo, refRepo).(*jobQueryService)
	return svc, jobRepo
}

func mkJob(id, title string, postedAt time.Time) models.Job {
	return models.Job{
		BaseModel: models.BaseModel{ID: id},
		Title:     title,
		PostedAt:  postedAt,

		LocationID:        "10", // legacy-ссылка
		DomainID:          "dom-uuid-1",
		JobTypeID:         "type-uuid-1",
		WorkplaceTypeID:   "wp-uuid-1",
		ExperienceLevelID: "exp-uuid-1",
	}
}

func TestPlanJobQuery_NoFilters_PushesOrderAndLimit(t *testing.T) {
	plan := planJobQuery(&dto.JobQueryRequest{Limit: 25})

	assert.False(t, plan.inMemory)
	assert.True(t, plan.criteria.OrderByPostedAt)
	assert.Equal(t, 25, plan.criteria.Limit)
}

func TestPlanJobQuery_ComplexFilter_GoesInMemory(t *testing.T) {
	cases := map[string]dto.JobQueryRequest{
		"recruiter":  {RecruiterID: "r1"},
		"employee":   {EmployeeID: "e1"},
		"experience": {ExperienceLevelID: "exp-uuid-1"},
		"locations":  {LocationIDs: []string{"10"}},
		"domains":    {DomainIDs: []string{"dom-uuid-1"}},
		"jobTypes":   {JobTypeIDs: []string{"type-uuid-1"}},
		"search":     {SearchTerm: "engineer"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			plan := planJobQuery(&req)
			assert.True(t, plan.inMemory)
			assert.False(t, plan.criteria.OrderByPostedAt)
			assert.Zero(t, plan.criteria.Limit, "limit must not be pushed to the store")
		})
	}
}

func TestPlanJobQuery_IsReferralAlone_StaysNative(t *testing.T) {
	flag := true
	plan := planJobQuery(&dto.JobQueryRequest{IsReferral: &flag})

	assert.False(t, plan.inMemory)
	require.NotNil(t, plan.criteria.IsReferral)
	assert.True(t, *plan.criteria.IsReferral)
}

func TestListJobs_OrderingParity(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jobs := []models.Job{
		mkJob("j1", "Backend Engineer", base),
		mkJob("j3", "Data Engineer", base.AddDate(0, 0, 4)),
		mkJob("j2", "Frontend Engineer", base.AddDate(0, 0, 2)),
	}

	svc, _ := newQueryFixture(jobs, nil)

	// Нативная сортировка (без сложных фильтров)
	native, err := svc.ListJobs(nil, &dto.JobQueryRequest{})
	require.NoError(t, err)

	// In-memory сортировка (поиск переводит план в память)
	inMemory, err := svc.ListJobs(nil, &dto.JobQueryRequest{SearchTerm: "Engineer"})
	require.NoError(t, err)

	nativeIDs := jobIDs(native.Jobs)
	inMemoryIDs := jobIDs(inMemory.Jobs)

	assert.Equal(t, []string{"j3", "j2", "j1"}, nativeIDs)
	assert.Equal(t, nativeIDs, inMemoryIDs, "both paths must produce identical ordering")
}

func TestListJobs_DenormalizationResolvesBothIDForms(t *testing.T) {
	base := time.Now()
	job := mkJob("j1", "Backend Engineer", base)
	job.LocationID = "10"         // legacy id
	job.DomainID = "dom-uuid-1"   // durable uuid
	job.JobTypeID = "type-uuid-1" // durable uuid

	svc, _ := newQueryFixture([]models.Job{job}, nil)

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)

	view := resp.Jobs[0]
	assert.Equal(t, "Bangalore", view.Location)
	assert.Equal(t, "Engineering", view.Domain)
	assert.Equal(t, "Full-time", view.Type)
	assert.Equal(t, "Remote", view.WorkplaceType)
	assert.Equal(t, "Senior", view.ExperienceLevel)
}

func TestListJobs_UnresolvedReferenceGetsPlaceholder(t *testing.T) {
	job := mkJob("j1", "Backend Engineer", time.Now())
	job.LocationID = "999" // нет такого справочника
	job.WorkplaceTypeID = ""

	svc, _ := newQueryFixture([]models.Job{job}, nil)

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)

	assert.Equal(t, "N/A", resp.Jobs[0].Location)
	assert.Equal(t, "N/A", resp.Jobs[0].WorkplaceType)
	// Остальные резолвятся штатно
	assert.Equal(t, "Engineering", resp.Jobs[0].Domain)
}

func TestListJobs_ApplicantCounts(t *testing.T) {
	now := time.Now()
	jobs := []models.Job{mkJob("j1", "Backend Engineer", now), mkJob("j2", "QA Engineer", now)}
	apps := []models.Application{
		{ID: "u1_j1", JobID: "j1", UserID: "u1", StatusID: models.ApplicationStatusApplied},
		{ID: "u2_j1", JobID: "j1", UserID: "u2", StatusID: models.ApplicationStatusSelected},
		{ID: "u3_j1", JobID: "j1", UserID: "u3", StatusID: models.ApplicationStatusSelected},
	}

	svc, _ := newQueryFixture(jobs, apps)

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{})
	require.NoError(t, err)

	byID := map[string]dto.JobView{}
	for _, v := range resp.Jobs {
		byID[v.ID] = v
	}

	assert.Equal(t, 3, byID["j1"].ApplicantCount)
	assert.Equal(t, 2, byID["j1"].SelectedApplicantCount)
	assert.Zero(t, byID["j2"].ApplicantCount)
	assert.Zero(t, byID["j2"].SelectedApplicantCount)
}

func TestListJobs_PostedWithinDays_BoundaryInclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	jobs := []models.Job{
		mkJob("exact", "Boundary Engineer", now.AddDate(0, 0, -7)), // ровно 7 дней
		mkJob("older", "Old Engineer", now.AddDate(0, 0, -8)),
		mkJob("fresh", "Fresh Engineer", now.AddDate(0, 0, -1)),
	}

	svc, _ := newQueryFixture(jobs, nil)
	svc.now = func() time.Time { return now }

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{PostedWithinDays: 7})
	require.NoError(t, err)

	ids := jobIDs(resp.Jobs)
	assert.Contains(t, ids, "exact", "job posted exactly now-7d must be included")
	assert.Contains(t, ids, "fresh")
	assert.NotContains(t, ids, "older")
}

func TestListJobs_SearchTermCaseInsensitive(t *testing.T) {
	now := time.Now()
	jobs := []models.Job{
		mkJob("j1", "Software Engineer", now),
		mkJob("j2", "Product Manager", now),
		mkJob("j3", "SOFTWARE ENGINEER", now),
	}

	svc, _ := newQueryFixture(jobs, nil)

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{SearchTerm: "engineer"})
	require.NoError(t, err)

	ids := jobIDs(resp.Jobs)
	assert.ElementsMatch(t, []string{"j1", "j3"}, ids)
}

func TestListJobs_InMemoryLimitTruncates(t *testing.T) {
	now := time.Now()
	var jobs []models.Job
	for i := 0; i < 5; i++ {
		jobs = append(jobs, mkJob("j"+strconv.Itoa(i+1), "Engineer", now.Add(time.Duration(i)*time.Hour)))
	}

	svc, _ := newQueryFixture(jobs, nil)

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{SearchTerm: "Engineer", Limit: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Jobs, 2)
	// Свежие первыми
	assert.Equal(t, "j5", resp.Jobs[0].ID)
}

func TestListJobs_StoreFailureIsAllOrNothing(t *testing.T) {
	jobRepo := &fakeJobRepo{jobs: []models.Job{mkJob("j1", "Engineer", time.Now())}}
	appRepo := &fakeApplicationRepo{failAll: true}
	refRepo := &fakeReferenceRepo{data: testReferenceData()}
	svc := NewJobQueryService(jobRepo, appRepo, refRepo)

	resp, err := svc.ListJobs(nil, &dto.JobQueryRequest{})
	assert.Error(t, err)
	assert.Nil(t, resp, "no partial results on store failure")
}

func TestListJobs_CacheableScope(t *testing.T) {
	svc, _ := newQueryFixture(nil, nil)

	public, err := svc.ListJobs(nil, &dto.JobQueryRequest{})
	require.NoError(t, err)
	assert.True(t, public.Cacheable)

	recruiter, err := svc.ListJobs(nil, &dto.JobQueryRequest{RecruiterID: "r1"})
	require.NoError(t, err)
	assert.False(t, recruiter.Cacheable)

	admin, err := svc.ListJobs(nil, &dto.JobQueryRequest{AdminScoped: true})
	require.NoError(t, err)
	assert.False(t, admin.Cacheable)
}

func TestDashboard_SplitsByReferralAndDomain(t *testing.T) {
	j1 := mkJob("j1", "Backend Engineer", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	j1.IsReferral = false
	j1.DomainID = "d1"
	j2 := mkJob("j2", "Referral Engineer", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	j2.IsReferral = true
	j2.DomainID = "d1"
	j3 := mkJob("j3", "Other Domain", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	j3.DomainID = "d2"

	svc, _ := newQueryFixture([]models.Job{j1, j2, j3}, nil)

	resp, err := svc.DashboardJobs(nil, "d1", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"j1"}, jobIDs(resp.Recommended))
	assert.Equal(t, []string{"j2"}, jobIDs(resp.Referral))
	assert.True(t, resp.Cacheable)
}

func TestDashboard_FeedsTruncatedToTen(t *testing.T) {
	now := time.Now()
	var jobs []models.Job
	for i := 0; i < 15; i++ {
		job := mkJob("j"+strconv.Itoa(i), "Engineer", now.Add(-time.Duration(i)*time.Hour))
		jobs = append(jobs, job)
	}

	svc, _ := newQueryFixture(jobs, nil)

	resp, err := svc.DashboardJobs(nil, "", 0)
	require.NoError(t, err)

	assert.Len(t, resp.Recommended, 10)
	// Свежие первыми
	assert.Equal(t, "j0", resp.Recommended[0].ID)
}

func TestDashboard_DenormalizesOnlyLocationAndType(t *testing.T) {
	job := mkJob("j1", "Backend Engineer", time.Now())
	svc, _ := newQueryFixture([]models.Job{job}, nil)

	resp, err := svc.DashboardJobs(nil, "", 0)
	require.NoError(t, err)
	require.Len(t, resp.Recommended, 1)

	view := resp.Recommended[0]
	assert.Equal(t, "Bangalore", view.Location)
	assert.Equal(t, "Full-time", view.Type)
	// Остальные ссылки в дашборде не резолвятся
	assert.Empty(t, view.Domain)
	assert.Empty(t, view.WorkplaceType)
	assert.Empty(t, view.ExperienceLevel)
}

func TestGetJob_ResolvesAllReferences(t *testing.T) {
	job := mkJob("j1", "Backend Engineer", time.Now())
	svc, _ := newQueryFixture([]models.Job{job}, nil)

	resp, err := svc.GetJob(nil, "j1", false)
	require.NoError(t, err)

	assert.Equal(t, "Bangalore", resp.Job.Location)
	assert.Equal(t, "Engineering", resp.Job.Domain)
	assert.Equal(t, "Full-time", resp.Job.Type)
	assert.Equal(t, "Remote", resp.Job.WorkplaceType)
	assert.Equal(t, "Senior", resp.Job.ExperienceLevel)
	assert.True(t, resp.Cacheable)
}

func TestGetJob_MissingReferenceIsEmptyNotError(t *testing.T) {
	job := mkJob("j1", "Backend Engineer", time.Now())
	job.LocationID = "999"
	svc, _ := newQueryFixture([]models.Job{job}, nil)

	resp, err := svc.GetJob(nil, "j1", false)
	require.NoError(t, err)
	assert.Empty(t, resp.Job.Location)
}

func TestGetJob_FreshSuppressesCaching(t *testing.T) {
	job := mkJob("j1", "Backend Engineer", time.Now())
	svc, _ := newQueryFixture([]models.Job{job}, nil)

	resp, err := svc.GetJob(nil, "j1", true)
	require.NoError(t, err)
	assert.False(t, resp.Cacheable)
}

func TestGetJob_NotFound(t *testing.T) {
	svc, _ := newQueryFixture(nil, nil)

	_, err := svc.GetJob(nil, "missing", false)
	assert.Error(t, err)
}

func jobIDs(views []dto.JobView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}
