package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
)

// goalService handles budget-goal business logic.
type goalService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, categoryService CategoryServicer) GoalServicer {
	return &goalService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateGoal creates a budget goal. A nil category ID creates the
// whole-budget goal; at most one goal may exist per category (and one
// whole-budget goal overall).
func (s *goalService) CreateGoal(categoryID *uint, amount int64) (*models.BudgetGoal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal amount must be greater than zero")
	}

	if categoryID != nil {
		category, err := s.categoryService.GetCategoryByID(*categoryID)
		if err != nil {
			return nil, err
		}
		if category.Type != models.CategoryTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goals apply to expense categories only")
		}
	}

	query := s.db.Model(&models.BudgetGoal{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateGoal
	}

	goal := &models.BudgetGoal{
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals returns all goals with their categories. The list is small; no
// pagination.
func (s *goalService) GetGoals() ([]models.BudgetGoal, error) {
	var goals []models.BudgetGoal
	if err := s.db.Preload("Category").Order("category_id ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// UpdateGoal changes a goal's amount.
func (s *goalService) UpdateGoal(goalID uint, amount int64) (*models.BudgetGoal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal amount must be greater than zero")
	}

	var goal models.BudgetGoal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.Amount = amount
	if err := s.db.Save(&goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// DeleteGoal removes a goal.
func (s *goalService) DeleteGoal(goalID uint) error {
	var goal models.BudgetGoal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGoalNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
