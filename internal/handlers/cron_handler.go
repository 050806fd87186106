package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gagyebu/internal/services"
)

// CronHandler exposes the external trigger for scheduled generation, for
// deployments where an outside scheduler drives the nightly run instead of
// the in-process one.
type CronHandler struct {
	generationService services.GenerationServicer
}

// NewCronHandler creates a new CronHandler.
func NewCronHandler(generationService services.GenerationServicer) *CronHandler {
	return &CronHandler{generationService: generationService}
}

// Generate handles a generation trigger.
// @Summary     Trigger occurrence generation
// @Description Materialize due occurrences for all active fixed transactions; idempotent within a cycle
// @Tags        cron
// @Accept      json
// @Produce     json
// @Security    CronKeyAuth
// @Param       X-Cron-Key header string true "Shared cron secret"
// @Success     200 {object} services.GenerationResult "Run result"
// @Failure     401 {object} ErrorResponse "Invalid cron key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cron/generate [post]
func (h *CronHandler) Generate(c *gin.Context) {
	result, err := h.generationService.GenerateDue(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
