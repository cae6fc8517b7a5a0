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

type ReferenceHandler struct {
	*BaseHandler
	referenceService services.ReferenceService
}

func NewReferenceHandler(base *BaseHandler, referenceService services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{
		BaseHandler:      base,
		referenceService: referenceService,
	}
}

func (h *ReferenceHandler) RegisterRoutes(r *gin.RouterGroup) {
	references := r.Group("/references")
	{
		references.GET("/:kind", h.List)
	}

	admin := r.Group("/references")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleSuperAdmin),
	)
	{
		admin.POST("/:kind", h.Create)
		admin.PUT("/:kind/:id", h.Update)
		admin.DELETE("/:kind/:id", h.Delete)
	}
}

// List - публичное чтение справочной коллекции.
// Справочники меняются редко, ответ всегда кэшируемый.
func (h *ReferenceHandler) List(c *gin.Context) {
	items, err := h.referenceService.List(h.GetDB(c), c.Param("kind"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.SetCacheControl(c, true)
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ReferenceHandler) Create(c *gin.Context) {
	var req dto.CreateReferenceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	item, err := h.referenceService.Create(h.GetDB(c), c.Param("kind"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ReferenceHandler) Update(c *gin.Context) {
	var req dto.UpdateReferenceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.referenceService.Update(h.GetDB(c), c.Param("kind"), c.Param("id"), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": c.Param("id")})
}

func (h *ReferenceHandler) Delete(c *gin.Context) {
	if err := h.referenceService.Delete(h.GetDB(c), c.Param("kind"), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
