package installment

import "testing"

func TestCalculate(t *testing.T) {
	t.Run("twelve_months_ten_percent", func(t *testing.T) {
		s := Calculate(1200000, 12, 10, 0)

		if len(s.Payments) != 12 {
			t.Fatalf("expected 12 rounds, got %d", len(s.Payments))
		}

		first := s.Payments[0]
		if first.Principal != 100000 {
			t.Errorf("round 1 principal: expected 100000, got %d", first.Principal)
		}
		if first.Interest != 10000 {
			t.Errorf("round 1 interest: expected 10000, got %d", first.Interest)
		}
		if first.Total != 110000 {
			t.Errorf("round 1 total: expected 110000, got %d", first.Total)
		}

		last := s.Payments[11]
		if last.Principal != 100000 {
			t.Errorf("round 12 principal: expected 100000, got %d", last.Principal)
		}
		if last.Interest != 833 {
			t.Errorf("round 12 interest: expected 833, got %d", last.Interest)
		}

		if s.MonthlyPayment != 110000 {
			t.Errorf("headline payment: expected 110000, got %d", s.MonthlyPayment)
		}
	})

	t.Run("remainder_folded_into_last_round", func(t *testing.T) {
		s := Calculate(100000, 3, 0, 3)

		if s.Payments[0].Principal != 33333 || s.Payments[1].Principal != 33333 {
			t.Errorf("rounds 1-2 principal: expected 33333, got %d and %d",
				s.Payments[0].Principal, s.Payments[1].Principal)
		}
		if s.Payments[2].Principal != 33334 {
			t.Errorf("round 3 principal: expected 33334, got %d", s.Payments[2].Principal)
		}
		if s.TotalPayment != 100000 {
			t.Errorf("total payment: expected 100000, got %d", s.TotalPayment)
		}
	})

	t.Run("interest_free_rounds_accrue_nothing", func(t *testing.T) {
		s := Calculate(1200000, 12, 18, 3)

		for i := 0; i < 3; i++ {
			if s.Payments[i].Interest != 0 {
				t.Errorf("round %d: expected zero interest, got %d", i+1, s.Payments[i].Interest)
			}
		}
		if s.Payments[3].Interest == 0 {
			t.Error("round 4: expected interest to resume after the free period")
		}
	})

	t.Run("interest_uses_balance_before_payment", func(t *testing.T) {
		s := Calculate(1200000, 12, 10, 0)

		// Round 2 interest is on 1,100,000 (after one principal payment):
		// round(1100000 * 10/100/12) = 9167.
		if s.Payments[1].Interest != 9167 {
			t.Errorf("round 2 interest: expected 9167, got %d", s.Payments[1].Interest)
		}
	})

	t.Run("zero_rate", func(t *testing.T) {
		s := Calculate(600000, 6, 0, 0)
		if s.TotalInterest != 0 {
			t.Errorf("expected zero total interest, got %d", s.TotalInterest)
		}
		if s.TotalPayment != 600000 {
			t.Errorf("expected total payment 600000, got %d", s.TotalPayment)
		}
	})

	t.Run("invalid_input_yields_zero_schedule", func(t *testing.T) {
		for _, s := range []Schedule{
			Calculate(0, 12, 10, 0),
			Calculate(-500, 12, 10, 0),
			Calculate(100000, 0, 10, 0),
			Calculate(100000, -3, 10, 0),
		} {
			if len(s.Payments) != 0 || s.TotalPayment != 0 || s.MonthlyPayment != 0 {
				t.Errorf("expected zero schedule, got %+v", s)
			}
		}
	})
}

// Principal reconciliation must be exact for arbitrary inputs: the principal
// portions sum to the original principal and the final balance is zero.
func TestCalculateExactness(t *testing.T) {
	cases := []struct {
		principal int64
		months    int
		rate      float64
		free      int
	}{
		{1200000, 12, 10, 0},
		{100000, 3, 0, 3},
		{999999, 7, 13.5, 2},
		{1, 12, 24, 0},
		{35000000, 36, 5.9, 6},
		{777777, 11, 19.9, 11},
	}

	for _, c := range cases {
		s := Calculate(c.principal, c.months, c.rate, c.free)

		var sum int64
		for _, p := range s.Payments {
			sum += p.Principal
		}
		if sum != c.principal {
			t.Errorf("principal=%d months=%d: principal sum %d != %d", c.principal, c.months, sum, c.principal)
		}
		if last := s.Payments[len(s.Payments)-1]; last.RemainingPrincipal != 0 {
			t.Errorf("principal=%d months=%d: final remaining %d, expected 0", c.principal, c.months, last.RemainingPrincipal)
		}
		if s.TotalPayment != c.principal+s.TotalInterest {
			t.Errorf("principal=%d months=%d: total payment %d != principal+interest %d",
				c.principal, c.months, s.TotalPayment, c.principal+s.TotalInterest)
		}
	}
}

func TestPaymentForRound(t *testing.T) {
	s := Calculate(300000, 3, 0, 0)

	if _, ok := s.PaymentForRound(0); ok {
		t.Error("round 0 should not exist")
	}
	if _, ok := s.PaymentForRound(4); ok {
		t.Error("round 4 should not exist in a 3-month schedule")
	}
	p, ok := s.PaymentForRound(2)
	if !ok || p.Round != 2 {
		t.Errorf("expected round 2, got %+v ok=%v", p, ok)
	}
}
