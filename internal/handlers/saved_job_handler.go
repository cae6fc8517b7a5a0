package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/services"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SavedJobHandler struct {
	*BaseHandler
	savedJobService services.SavedJobService
}

func NewSavedJobHandler(base *BaseHandler, savedJobService services.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{
		BaseHandler:     base,
		savedJobService: savedJobService,
	}
}

func (h *SavedJobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("/:jobId/save", h.Toggle)
	}

	saved := r.Group("/saved-jobs")
	saved.Use(middleware.AuthMiddleware())
	{
		saved.GET("", h.List)
	}
}

// Toggle переключает закладку и возвращает итоговое состояние
func (h *SavedJobHandler) Toggle(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")

	resp, err := h.savedJobService.Toggle(h.GetDB(c), userID, jobID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List возвращает закладки; ?details=true добавляет полные вью-модели
func (h *SavedJobHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	withDetails := c.Query("details") == "true"

	resp, err := h.savedJobService.List(h.GetDB(c), userID, withDetails)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
