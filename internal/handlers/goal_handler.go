package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/services"
)

// GoalHandler handles budget-goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a budget goal.
type CreateGoalRequest struct {
	CategoryID *uint `json:"category_id"`
	Amount     int64 `json:"amount" binding:"required,gt=0"`
}

// UpdateGoalRequest represents the request payload for updating a budget goal.
type UpdateGoalRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// CreateGoal handles creating a budget goal.
// @Summary     Create a budget goal
// @Description Create a per-category spending target (omit category_id for the whole-budget goal)
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.BudgetGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate goal"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(req.CategoryID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing budget goals.
// @Summary     Get budget goals
// @Description Get all budget goals with their categories
// @Tags        goals
// @Accept      json
// @Produce     json
// @Success     200 {array} models.BudgetGoal "Goals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	goals, err := h.goalService.GetGoals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// UpdateGoal handles updating a goal's amount.
// @Summary     Update a budget goal
// @Description Change a goal's target amount
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path int               true "Goal ID"
// @Param       request body UpdateGoalRequest true "New amount"
// @Success     200 {object} models.BudgetGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(id, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal.
// @Summary     Delete a budget goal
// @Description Delete a budget goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id path int true "Goal ID"
// @Success     204 "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
