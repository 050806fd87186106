package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/services"
)

// SettingsHandler handles user-settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the request payload for updating settings.
type UpdateSettingsRequest struct {
	CycleStartDay int `json:"cycle_start_day" binding:"required,min=1,max=31"`
}

// GetSettings handles retrieving the settings.
// @Summary     Get settings
// @Description Get the user settings, creating defaults on first access
// @Tags        settings
// @Accept      json
// @Produce     json
// @Success     200 {object} models.Settings "Settings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings handles changing the cycle start day.
// @Summary     Update settings
// @Description Change the pay-cycle start day (1 means calendar months)
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body UpdateSettingsRequest true "New settings"
// @Success     200 {object} models.Settings "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid cycle day"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateCycleStartDay(req.CycleStartDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
