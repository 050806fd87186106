// Package installment computes amortization schedules for installment
// purchases using principal-equal amortization: the principal portion is
// constant each round and interest accrues on the declining balance. All
// amounts are integer won; rounding never drifts — the principal remainder is
// folded into the final round so the schedule reconciles exactly.
package installment

import "math"

// MonthlyPayment is one round of an amortization schedule.
type MonthlyPayment struct {
	Round              int   `json:"round"`
	Principal          int64 `json:"principal"`
	Interest           int64 `json:"interest"`
	Total              int64 `json:"total"`
	RemainingPrincipal int64 `json:"remaining_principal"`
}

// Schedule is a full amortization schedule. MonthlyPayment is the headline
// figure shown to the user — round 1's total; later rounds decrease as the
// interest portion shrinks.
type Schedule struct {
	Payments       []MonthlyPayment `json:"payments"`
	MonthlyPayment int64            `json:"monthly_payment"`
	TotalInterest  int64            `json:"total_interest"`
	TotalPayment   int64            `json:"total_payment"`
}

// Calculate produces the per-round schedule for the given principal, month
// count, annual interest rate (percent) and leading interest-free rounds.
//
// Non-positive principal or months yields the zero Schedule rather than an
// error, so callers can render "no computation" states directly.
func Calculate(principal int64, months int, annualRatePercent float64, interestFreeMonths int) Schedule {
	if principal <= 0 || months <= 0 {
		return Schedule{}
	}

	monthlyPrincipal := principal / int64(months)
	remainder := principal - monthlyPrincipal*int64(months)
	monthlyRate := annualRatePercent / 100 / 12

	payments := make([]MonthlyPayment, 0, months)
	balance := principal
	var totalInterest int64

	for round := 1; round <= months; round++ {
		paymentPrincipal := monthlyPrincipal
		if round == months {
			paymentPrincipal += remainder
		}

		// Interest on the balance before this round's principal payment.
		var interest int64
		if round > interestFreeMonths {
			interest = int64(math.Round(float64(balance) * monthlyRate))
		}

		balance -= paymentPrincipal
		totalInterest += interest

		payments = append(payments, MonthlyPayment{
			Round:              round,
			Principal:          paymentPrincipal,
			Interest:           interest,
			Total:              paymentPrincipal + interest,
			RemainingPrincipal: balance,
		})
	}

	return Schedule{
		Payments:       payments,
		MonthlyPayment: payments[0].Total,
		TotalInterest:  totalInterest,
		TotalPayment:   principal + totalInterest,
	}
}

// PaymentForRound returns the scheduled payment for a 1-based round, or false
// when the round is outside the schedule.
func (s Schedule) PaymentForRound(round int) (MonthlyPayment, bool) {
	if round < 1 || round > len(s.Payments) {
		return MonthlyPayment{}, false
	}
	return s.Payments[round-1], true
}
