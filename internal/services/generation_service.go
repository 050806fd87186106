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
)

// Flow-control sentinels for generateOne; neither leaves GenerateDue.
var (
	errAlreadyGenerated  = errors.New("occurrence already generated for this cycle")
	errScheduleComplete = errors.New("installment schedule is complete")
)

// generationService materializes due occurrences for active rules.
type generationService struct {
	db              *gorm.DB
	settingsService SettingsServicer
}

// NewGenerationService creates a new GenerationServicer.
func NewGenerationService(db *gorm.DB, settingsService SettingsServicer) GenerationServicer {
	return &generationService{
		db:              db,
		settingsService: settingsService,
	}
}

// GenerateDue walks every active rule and writes its occurrence for the
// current pay cycle, at most once per rule per cycle. Each rule is processed
// in its own transaction: one failing rule is logged and skipped, it never
// aborts the run. Safe to invoke repeatedly; repeats are deduplicated by a
// conditional update on last_generated.
func (s *generationService) GenerateDue(now time.Time) (*GenerationResult, error) {
	rng, err := s.settingsService.CurrentCycle(now)
	if err != nil {
		return nil, err
	}
	today := cycle.Truncate(now)

	var rules []models.FixedTransaction
	if err := s.db.Where("is_active = ?", true).Order("id ASC").Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &GenerationResult{RulesChecked: len(rules)}
	log := logger.Get()

	for i := range rules {
		rule := &rules[i]

		var endDate *time.Time
		if rule.EndType == models.EndTypeDate {
			endDate = rule.EndDate
		}

		// A rule whose end date precedes the whole cycle will never fire
		// again; retire it instead of re-examining it every night.
		if endDate != nil && cycle.Truncate(*endDate).Before(rng.Start) {
			if err := s.db.Model(rule).Update("is_active", false).Error; err != nil {
				log.Warnw("failed to deactivate expired fixed transaction", "fixed_id", rule.ID, "error", err)
				result.FailedFixed = append(result.FailedFixed, rule.ID)
				continue
			}
			result.Deactivated++
			continue
		}

		occ, ok := cycle.OccurrenceInRange(rule.Day, rng, endDate)
		if !ok || occ.After(today) || occ.Before(cycle.Truncate(rule.StartDate)) {
			result.Skipped++
			continue
		}
		if rule.LastGenerated != nil && rng.Contains(*rule.LastGenerated) {
			result.Skipped++
			continue
		}

		err := s.generateOne(rule, occ, rng)
		switch {
		case errors.Is(err, errAlreadyGenerated):
			result.Skipped++
		case errors.Is(err, errScheduleComplete):
			result.Deactivated++
		case err != nil:
			log.Warnw("failed to generate occurrence", "fixed_id", rule.ID, "date", occ.Format("2006-01-02"), "error", err)
			result.FailedFixed = append(result.FailedFixed, rule.ID)
		default:
			result.Generated++
			if !rule.IsActive {
				result.Deactivated++
			}
		}
	}

	log.Infow("generation run finished",
		"cycle_start", rng.Start.Format("2006-01-02"),
		"cycle_end", rng.End.Format("2006-01-02"),
		"checked", result.RulesChecked,
		"generated", result.Generated,
		"skipped", result.Skipped,
		"deactivated", result.Deactivated,
		"failed", len(result.FailedFixed),
	)
	return result, nil
}

// generateOne claims the cycle for one rule and writes its occurrence. The
// claim is a conditional update on last_generated: if no row matches, another
// run got there first and the occurrence already exists.
func (s *generationService) generateOne(rule *models.FixedTransaction, occ time.Time, rng cycle.Range) error {
	amount := rule.Amount
	round := 0

	var schedule installment.Schedule
	if rule.IsInstallment {
		schedule = installment.Calculate(rule.InstallmentPrincipal, rule.InstallmentMonths, rule.InstallmentRate, rule.InstallmentFreeMonths)
		round = rule.InstallmentCurrentMonth + 1
		pay, ok := schedule.PaymentForRound(round)
		if !ok {
			// All rounds paid; nothing left to generate.
			if err := s.db.Model(rule).Update("is_active", false).Error; err != nil {
				return err
			}
			rule.IsActive = false
			return errScheduleComplete
		}
		amount = pay.Total
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"last_generated": occ}
		if rule.IsInstallment {
			updates["installment_current_month"] = round
			if next, ok := schedule.PaymentForRound(round + 1); ok {
				updates["amount"] = next.Total
			} else {
				updates["is_active"] = false
			}
		}

		res := tx.Model(&models.FixedTransaction{}).
			Where("id = ? AND (last_generated IS NULL OR last_generated < ?)", rule.ID, rng.Start).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyGenerated
		}

		entry := &models.Transaction{
			CategoryID:    rule.CategoryID,
			Type:          rule.Type,
			Amount:        amount,
			Memo:          rule.Memo,
			Date:          occ,
			SourceFixedID: &rule.ID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		rule.LastGenerated = &occ
		if rule.IsInstallment {
			rule.InstallmentCurrentMonth = round
			if next, ok := schedule.PaymentForRound(round + 1); ok {
				rule.Amount = next.Total
			} else {
				rule.IsActive = false
			}
		}
		return nil
	})
}
