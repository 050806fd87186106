package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gagyebu/internal/cycle"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/installment"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
)

// fixedService handles recurring-rule business logic.
type fixedService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewFixedService creates a new FixedServicer.
func NewFixedService(db *gorm.DB, categoryService CategoryServicer) FixedServicer {
	return &fixedService{
		db:              db,
		categoryService: categoryService,
	}
}

// CreateFixed registers a recurring rule and backfills every occurrence from
// the start date through today in the same database transaction, so the rule
// and its history appear atomically.
func (s *fixedService) CreateFixed(input CreateFixedInput, now time.Time) (*models.FixedTransaction, *BackfillResult, error) {
	if err := s.validateRule(input.Day, input.Type, input.StartDate, input.EndType, input.EndDate, input.CategoryID); err != nil {
		return nil, nil, err
	}
	if input.Amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	rule := &models.FixedTransaction{
		Day:        input.Day,
		Type:       input.Type,
		Amount:     input.Amount,
		CategoryID: input.CategoryID,
		Memo:       input.Memo,
		StartDate:  cycle.Truncate(input.StartDate),
		EndType:    input.EndType,
		EndDate:    truncatePtr(input.EndDate),
		IsActive:   true,
	}

	backfill := &BackfillResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rule).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.backfill(tx, rule, now, backfill)
	})
	if err != nil {
		return nil, nil, err
	}

	return rule, backfill, nil
}

// CreateInstallment registers an installment purchase as a specialized
// recurring rule. The stored amount is always the *next due round's* payment
// from the amortization schedule; elapsed rounds are backfilled immediately.
func (s *fixedService) CreateInstallment(input CreateInstallmentInput, now time.Time) (*models.FixedTransaction, *BackfillResult, error) {
	if input.Principal <= 0 || input.Months <= 0 {
		return nil, nil, apperrors.ErrInvalidInstallment
	}
	if input.AnnualRate < 0 || input.FreeMonths < 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInstallment, "rate and interest-free months must not be negative")
	}
	if err := s.validateRule(input.Day, models.TransactionTypeExpense, input.StartDate, models.EndTypeNever, nil, input.CategoryID); err != nil {
		return nil, nil, err
	}

	schedule := installment.Calculate(input.Principal, input.Months, input.AnnualRate, input.FreeMonths)

	start := cycle.Truncate(input.StartDate)
	final := finalOccurrence(input.Day, start, input.Months)

	rule := &models.FixedTransaction{
		Day:        input.Day,
		Type:       models.TransactionTypeExpense,
		Amount:     schedule.MonthlyPayment,
		CategoryID: input.CategoryID,
		Memo:       input.Memo,
		StartDate:  start,
		EndType:    models.EndTypeDate,
		EndDate:    &final,
		IsActive:   true,

		IsInstallment:         true,
		InstallmentPrincipal:  input.Principal,
		InstallmentMonths:     input.Months,
		InstallmentRate:       input.AnnualRate,
		InstallmentFreeMonths: input.FreeMonths,
	}

	backfill := &BackfillResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rule).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.backfill(tx, rule, now, backfill)
	})
	if err != nil {
		return nil, nil, err
	}

	return rule, backfill, nil
}

// backfill materializes every occurrence due between the rule's start date
// and today, advancing installment state as it goes. Must run inside the
// caller's transaction.
func (s *fixedService) backfill(tx *gorm.DB, rule *models.FixedTransaction, now time.Time, result *BackfillResult) error {
	today := cycle.Truncate(now)
	var endDate *time.Time
	if rule.EndType == models.EndTypeDate {
		endDate = rule.EndDate
	}

	schedule := installment.Calculate(rule.InstallmentPrincipal, rule.InstallmentMonths, rule.InstallmentRate, rule.InstallmentFreeMonths)

	var last *time.Time
	round := 0
	for _, occ := range cycle.Project(rule.Day, rule.StartDate, today.Year(), today.Month(), endDate) {
		// Project emits the start month's occurrence even when it precedes
		// the start date; those never count.
		if occ.Before(cycle.Truncate(rule.StartDate)) || occ.After(today) {
			continue
		}

		amount := rule.Amount
		if rule.IsInstallment {
			pay, ok := schedule.PaymentForRound(round + 1)
			if !ok {
				break
			}
			amount = pay.Total
		}

		occurrence := occ
		entry := &models.Transaction{
			CategoryID:    rule.CategoryID,
			Type:          rule.Type,
			Amount:        amount,
			Memo:          rule.Memo,
			Date:          occurrence,
			SourceFixedID: &rule.ID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		round++
		last = &occurrence
		result.Generated++
	}

	rule.LastGenerated = last
	if rule.IsInstallment {
		rule.InstallmentCurrentMonth = round
		if next, ok := schedule.PaymentForRound(round + 1); ok {
			rule.Amount = next.Total
		} else {
			rule.IsActive = false
		}
	} else if endDate != nil && endDate.Before(today) {
		rule.IsActive = false
	}

	if err := tx.Save(rule).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if result.Generated > 0 {
		logger.Get().Infow("backfilled fixed transaction",
			"fixed_id", rule.ID,
			"generated", result.Generated,
		)
	}
	return nil
}

// GetFixed returns recurring rules, optionally filtered by active state.
func (s *fixedService) GetFixed(page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.FixedTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.FixedTransaction{})
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rules []models.FixedTransaction
	if err := base.Preload("Category").
		Order("day ASC, id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rules, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFixedByID returns a single rule with its category.
func (s *fixedService) GetFixedByID(fixedID uint) (*models.FixedTransaction, error) {
	var rule models.FixedTransaction
	if err := s.db.Preload("Category").First(&rule, fixedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// UpdateFixed updates the given fields; nil parameters are left untouched.
// Installment amounts are derived from the schedule and cannot be set
// directly. Already-generated occurrences are never rewritten.
func (s *fixedService) UpdateFixed(fixedID uint, amount *int64, memo *string, isActive *bool, endDate *time.Time) (*models.FixedTransaction, error) {
	rule, err := s.GetFixedByID(fixedID)
	if err != nil {
		return nil, err
	}

	if amount != nil {
		if rule.IsInstallment {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "installment amount is derived from its schedule")
		}
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		rule.Amount = *amount
	}
	if memo != nil {
		rule.Memo = *memo
	}
	if isActive != nil {
		rule.IsActive = *isActive
	}
	if endDate != nil {
		truncated := cycle.Truncate(*endDate)
		if truncated.Before(rule.StartDate) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not precede the start date")
		}
		rule.EndType = models.EndTypeDate
		rule.EndDate = &truncated
	}

	if err := s.db.Save(rule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rule, nil
}

// DeleteFixed soft-deletes a rule. With cascade, its generated occurrences
// are deleted in the same transaction; otherwise history stays in the ledger.
func (s *fixedService) DeleteFixed(fixedID uint, cascade bool) error {
	rule, err := s.GetFixedByID(fixedID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if cascade {
			if err := tx.Where("source_fixed_id = ?", rule.ID).Delete(&models.Transaction{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := tx.Delete(rule).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetInstallmentSchedule returns the full amortization schedule for an
// installment rule.
func (s *fixedService) GetInstallmentSchedule(fixedID uint) (*installment.Schedule, error) {
	rule, err := s.GetFixedByID(fixedID)
	if err != nil {
		return nil, err
	}
	if !rule.IsInstallment {
		return nil, apperrors.ErrNotAnInstallment
	}

	schedule := installment.Calculate(rule.InstallmentPrincipal, rule.InstallmentMonths, rule.InstallmentRate, rule.InstallmentFreeMonths)
	return &schedule, nil
}

// validateRule checks the shared fields of recurring-rule creation.
func (s *fixedService) validateRule(day int, transactionType models.TransactionType, startDate time.Time, endType models.EndType, endDate *time.Time, categoryID *uint) error {
	if day < 1 || day > 31 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day must be between 1 and 31")
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return apperrors.ErrInvalidTransactionType
	}
	if startDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "start date is required")
	}
	switch endType {
	case models.EndTypeNever:
		if endDate != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must be empty when end type is never")
		}
	case models.EndTypeDate:
		if endDate == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "end date is required when end type is date")
		}
		if cycle.Truncate(*endDate).Before(cycle.Truncate(startDate)) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not precede the start date")
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end type must be never or date")
	}
	if categoryID != nil {
		if _, err := s.categoryService.GetCategoryByID(*categoryID); err != nil {
			return err
		}
	}
	return nil
}

// finalOccurrence returns the date of round `months` for an installment
// starting at start: the first occurrence on or after the start date, plus
// months-1 further months, with per-month clamping throughout.
func finalOccurrence(day int, start time.Time, months int) time.Time {
	year, month, _ := start.Date()
	loc := start.Location()

	first := dateOfMonth(year, month, day, loc)
	if first.Before(start) {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	for i := 1; i < months; i++ {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return dateOfMonth(year, month, day, loc)
}

func dateOfMonth(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, cycle.ClampDay(year, month, day), 0, 0, 0, 0, loc)
}

func truncatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	truncated := cycle.Truncate(*t)
	return &truncated
}
