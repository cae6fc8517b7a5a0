package handlers

import (
	"net/http"
	"strconv"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobQueryService services.JobQueryService
	jobService      services.JobService
}

func NewJobHandler(base *BaseHandler, jobQueryService services.JobQueryService, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler:     base,
		jobQueryService: jobQueryService,
		jobService:      jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/dashboard", h.Dashboard)
		jobs.GET("/:jobId", h.GetJob)
	}

	// Управление вакансиями: рекрутеры, сотрудники и админы
	manage := r.Group("/jobs")
	manage.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRoles(
			models.UserRoleRecruiter, models.UserRoleEmployee,
			models.UserRoleAdmin, models.UserRoleSuperAdmin,
		),
	)
	{
		manage.POST("", h.CreateJob)
		manage.PUT("/:jobId", h.UpdateJob)
		manage.DELETE("/:jobId", h.DeleteJob)
	}
}

// ListJobs - основной списочный запрос движка
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.JobQueryRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.jobQueryService.ListJobs(h.GetDB(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.SetCacheControl(c, resp.Cacheable)
	c.JSON(http.StatusOK, resp)
}

// Dashboard - две ленты: рекомендованные и реферальные вакансии
func (h *JobHandler) Dashboard(c *gin.Context) {
	domainID := c.Query("domainId")
	postedWithinDays, _ := strconv.Atoi(c.Query("postedWithinDays"))

	resp, err := h.jobQueryService.DashboardJobs(h.GetDB(c), domainID, postedWithinDays)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.SetCacheControl(c, resp.Cacheable)
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")
	fresh := c.Query("fresh") == "true"

	resp, err := h.jobQueryService.GetJob(h.GetDB(c), jobID, fresh)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.SetCacheControl(c, resp.Cacheable)
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(h.GetDB(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID := c.Param("jobId")

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(h.GetDB(c), jobID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("jobId")

	if err := h.jobService.Delete(h.GetDB(c), jobID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": jobID})
}
