package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gagyebu/internal/cycle"
	"gagyebu/internal/services"
)

// DashboardHandler serves the cycle and survival views.
type DashboardHandler struct {
	settingsService services.SettingsServicer
	survivalService services.SurvivalServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(settingsService services.SettingsServicer, survivalService services.SurvivalServicer) *DashboardHandler {
	return &DashboardHandler{
		settingsService: settingsService,
		survivalService: survivalService,
	}
}

// GetCycle handles retrieving the current pay cycle.
// @Summary     Get current cycle
// @Description Get the pay cycle containing today, with days remaining
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Success     200 {object} cycle.Range "Cycle range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/cycle [get]
func (h *DashboardHandler) GetCycle(c *gin.Context) {
	now := time.Now()
	rng, err := h.settingsService.CurrentCycle(now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cycle":     rng,
		"days_left": cycle.DaysLeft(now, rng.End),
	})
}

// GetSurvival handles retrieving the survival view.
// @Summary     Get budget survival
// @Description Get per-category budget positions and the safe daily spend for the rest of the cycle
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Success     200 {object} services.SurvivalResult "Survival view"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/survival [get]
func (h *DashboardHandler) GetSurvival(c *gin.Context) {
	result, err := h.survivalService.GetSurvival(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
