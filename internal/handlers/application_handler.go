package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("/:jobId/apply", h.Apply)
	}

	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("/my", h.MyApplications)
	}

	// Смена статуса и просмотр откликов - управленческие операции
	manage := r.Group("/applications")
	manage.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRoles(
			models.UserRoleRecruiter, models.UserRoleEmployee,
			models.UserRoleAdmin, models.UserRoleSuperAdmin,
		),
	)
	{
		manage.GET("/job/:jobId", h.JobApplications)
		manage.PUT("/:applicationId/status", h.SetStatus)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")

	app, err := h.applicationService.Apply(h.GetDB(c), userID, jobID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.GetUserApplications(h.GetDB(c), userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) JobApplications(c *gin.Context) {
	jobID := c.Param("jobId")

	apps, err := h.applicationService.GetJobApplications(h.GetDB(c), jobID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	applicationID := c.Param("applicationId")

	var req dto.SetApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.applicationService.SetStatus(h.GetDB(c), applicationID, req.StatusID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
