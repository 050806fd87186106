package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/services"
)

// SummaryHandler serves monthly calendar/statistics summaries.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetMonthlySummary handles retrieving a month's summary.
// @Summary     Get monthly summary
// @Description Get income/expense totals, a per-category breakdown, and per-day totals for one month
// @Tags        summary
// @Accept      json
// @Produce     json
// @Param       year  query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/monthly [get]
func (h *SummaryHandler) GetMonthlySummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	summary, err := h.summaryService.GetMonthlySummary(year, time.Month(month))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
