package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/installment"
	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
	"gagyebu/internal/services"
)

// FixedHandler handles recurring-rule requests, including installments.
type FixedHandler struct {
	fixedService services.FixedServicer
}

// NewFixedHandler creates a new FixedHandler.
func NewFixedHandler(fixedService services.FixedServicer) *FixedHandler {
	return &FixedHandler{fixedService: fixedService}
}

// CreateFixedRequest represents the request payload for registering a recurring rule.
type CreateFixedRequest struct {
	Day        int                    `json:"day" binding:"required,min=1,max=31"`
	Type       models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount     int64                  `json:"amount" binding:"required,gt=0"`
	CategoryID *uint                  `json:"category_id"`
	Memo       string                 `json:"memo" binding:"omitempty,max=200"`
	StartDate  time.Time              `json:"start_date" binding:"required"`
	EndType    models.EndType         `json:"end_type" binding:"required,end_type"`
	EndDate    *time.Time             `json:"end_date"`
}

// CreateInstallmentRequest represents the request payload for registering an
// installment purchase.
type CreateInstallmentRequest struct {
	Day        int       `json:"day" binding:"required,min=1,max=31"`
	CategoryID *uint     `json:"category_id"`
	Memo       string    `json:"memo" binding:"omitempty,max=200"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	Principal  int64     `json:"principal" binding:"required,gt=0"`
	Months     int       `json:"months" binding:"required,min=1,max=120"`
	AnnualRate float64   `json:"annual_rate" binding:"omitempty,gte=0,lte=100"`
	FreeMonths int       `json:"free_months" binding:"omitempty,gte=0"`
}

// UpdateFixedRequest represents the request payload for updating a rule.
type UpdateFixedRequest struct {
	Amount   *int64     `json:"amount" binding:"omitempty,gt=0"`
	Memo     *string    `json:"memo" binding:"omitempty,max=200"`
	IsActive *bool      `json:"is_active"`
	EndDate  *time.Time `json:"end_date"`
}

// PreviewInstallmentRequest represents the request payload for previewing an
// amortization schedule without persisting anything.
type PreviewInstallmentRequest struct {
	Principal  int64   `json:"principal" binding:"required,gt=0"`
	Months     int     `json:"months" binding:"required,min=1,max=120"`
	AnnualRate float64 `json:"annual_rate" binding:"omitempty,gte=0,lte=100"`
	FreeMonths int     `json:"free_months" binding:"omitempty,gte=0"`
}

// CreateFixed handles registering a recurring rule.
// @Summary     Create a fixed transaction
// @Description Register a recurring rule; occurrences from the start date through today are backfilled immediately
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       request body CreateFixedRequest true "Rule details"
// @Success     201 {object} models.FixedTransaction "Rule created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed [post]
func (h *FixedHandler) CreateFixed(c *gin.Context) {
	var req CreateFixedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, backfill, err := h.fixedService.CreateFixed(services.CreateFixedInput{
		Day:        req.Day,
		Type:       req.Type,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Memo:       req.Memo,
		StartDate:  req.StartDate,
		EndType:    req.EndType,
		EndDate:    req.EndDate,
	}, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fixed": rule, "backfill": backfill})
}

// CreateInstallment handles registering an installment purchase.
// @Summary     Create an installment
// @Description Register an installment purchase; elapsed rounds are backfilled with their scheduled amounts
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       request body CreateInstallmentRequest true "Installment details"
// @Success     201 {object} models.FixedTransaction "Installment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed/installments [post]
func (h *FixedHandler) CreateInstallment(c *gin.Context) {
	var req CreateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, backfill, err := h.fixedService.CreateInstallment(services.CreateInstallmentInput{
		Day:        req.Day,
		CategoryID: req.CategoryID,
		Memo:       req.Memo,
		StartDate:  req.StartDate,
		Principal:  req.Principal,
		Months:     req.Months,
		AnnualRate: req.AnnualRate,
		FreeMonths: req.FreeMonths,
	}, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fixed": rule, "backfill": backfill})
}

// PreviewInstallment handles a stateless amortization preview.
// @Summary     Preview an installment schedule
// @Description Compute the full amortization schedule without registering anything
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       request body PreviewInstallmentRequest true "Installment terms"
// @Success     200 {object} installment.Schedule "Amortization schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /fixed/installments/preview [post]
func (h *FixedHandler) PreviewInstallment(c *gin.Context) {
	var req PreviewInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	schedule := installment.Calculate(req.Principal, req.Months, req.AnnualRate, req.FreeMonths)
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// GetFixed handles listing recurring rules.
// @Summary     Get fixed transactions
// @Description Get a paginated list of recurring rules, optionally filtered by active state
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       is_active query bool false "Filter by active state"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FixedTransaction] "Paginated rules"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed [get]
func (h *FixedHandler) GetFixed(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var isActive *bool
	switch c.Query("is_active") {
	case "true":
		b := true
		isActive = &b
	case "false":
		b := false
		isActive = &b
	case "":
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_active must be true or false"))
		return
	}

	result, err := h.fixedService.GetFixed(page, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFixedByID handles retrieving a single rule.
// @Summary     Get fixed transaction by ID
// @Description Get a single recurring rule with its category
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       id path int true "Fixed transaction ID"
// @Success     200 {object} models.FixedTransaction "Rule details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed/{id} [get]
func (h *FixedHandler) GetFixedByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.fixedService.GetFixedByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed": rule})
}

// GetSchedule handles retrieving an installment's amortization schedule.
// @Summary     Get installment schedule
// @Description Get the full amortization schedule of an installment rule
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       id path int true "Fixed transaction ID"
// @Success     200 {object} installment.Schedule "Amortization schedule"
// @Failure     400 {object} ErrorResponse "Not an installment"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed/{id}/schedule [get]
func (h *FixedHandler) GetSchedule(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.fixedService.GetInstallmentSchedule(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// UpdateFixed handles updating a rule.
// @Summary     Update a fixed transaction
// @Description Update a rule's amount, memo, active state, or end date
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Fixed transaction ID"
// @Param       request body UpdateFixedRequest true "Fields to update"
// @Success     200 {object} models.FixedTransaction "Updated rule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed/{id} [put]
func (h *FixedHandler) UpdateFixed(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFixedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.fixedService.UpdateFixed(id, req.Amount, req.Memo, req.IsActive, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed": rule})
}

// DeleteFixed handles deleting a rule.
// @Summary     Delete a fixed transaction
// @Description Delete a rule; with cascade=true its generated occurrences are deleted as well
// @Tags        fixed
// @Accept      json
// @Produce     json
// @Param       id      path  int  true  "Fixed transaction ID"
// @Param       cascade query bool false "Also delete generated occurrences"
// @Success     204 "Rule deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed/{id} [delete]
func (h *FixedHandler) DeleteFixed(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	cascade := c.Query("cascade") == "true"
	if err := h.fixedService.DeleteFixed(id, cascade); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
