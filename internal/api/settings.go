package api

import (
	"net/http"

	"roleplay-chat/backend/internal/models"
	"roleplay-chat/backend/internal/service"
	apperrors "roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the per-user provider settings routes
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a settings handler
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Save handles PUT /settings/:provider
func (h *SettingsHandler) Save(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	kind := models.ProviderKind(c.Param("provider"))

	var settings models.ProviderSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.Error(apperrors.NewValidationError("", "invalid settings payload"))
		return
	}

	if err := h.settings.Save(c.Request.Context(), ownerID, kind, settings); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": kind})
}

// LoadActive handles GET /settings
func (h *SettingsHandler) LoadActive(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	kind, settings, err := h.settings.LoadActive(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	if settings == nil {
		c.JSON(http.StatusOK, gin.H{"active": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active":   kind,
		"settings": settings,
	})
}
