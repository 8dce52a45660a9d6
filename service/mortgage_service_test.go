package service

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestDownPayment_FirstTier(t *testing.T) {
	s := NewMortgageService()

	for _, price := range []float64{100_000, 250_000, 500_000} {
		if got := s.DownPayment(price); !approxEqual(got, price*0.05, tolerance) {
			t.Errorf("price %.0f: expected %.2f, got %.2f", price, price*0.05, got)
		}
	}
}

func TestDownPayment_MidTier(t *testing.T) {
	s := NewMortgageService()

	// 5% of the first 500k plus 10% of the 300k above it
	if got := s.DownPayment(800_000); !approxEqual(got, 55_000, tolerance) {
		t.Errorf("expected 55000, got %.2f", got)
	}
	if got := s.DownPayment(1_500_000); !approxEqual(got, 125_000, tolerance) {
		t.Errorf("expected 125000, got %.2f", got)
	}
}

func TestDownPayment_TopTier(t *testing.T) {
	s := NewMortgageService()

	if got := s.DownPayment(2_000_000); !approxEqual(got, 400_000, tolerance) {
		t.Errorf("expected 400000, got %.2f", got)
	}
	// flat 20% sits strictly above what the mid-tier formula would give
	midTier := 500_000*0.05 + (1_500_001-500_000.0)*0.10
	if got := s.DownPayment(1_500_001); got <= midTier {
		t.Errorf("expected top tier %.2f to exceed mid-tier formula %.2f", got, midTier)
	}
}

func TestDownPayment_ContinuousAtFirstBoundary(t *testing.T) {
	s := NewMortgageService()

	below := s.DownPayment(500_000)
	above := s.DownPayment(500_001)
	// only the tier-rate step on the marginal dollar, no jump
	if diff := above - below; diff < 0 || diff > 1 {
		t.Errorf("discontinuity at boundary: %.2f vs %.2f", below, above)
	}
}

func TestDownPayment_Monotone(t *testing.T) {
	s := NewMortgageService()

	prev := 0.0
	prevFraction := 0.0
	for price := 100_000.0; price <= 3_000_000; price += 10_000 {
		dp := s.DownPayment(price)
		if dp < prev {
			t.Fatalf("down payment decreased at price %.0f", price)
		}
		fraction := dp / price
		if fraction+tolerance < prevFraction {
			t.Fatalf("down payment fraction decreased at price %.0f", price)
		}
		prevFraction = fraction
		prev = dp
	}
}

func TestStressRate(t *testing.T) {
	s := NewMortgageService()

	if got := s.StressRate(0.03); !approxEqual(got, 0.0525, tolerance) {
		t.Errorf("floor should hold at 3%%: got %.4f", got)
	}
	if got := s.StressRate(0.06); !approxEqual(got, 0.08, tolerance) {
		t.Errorf("contract+buffer should win at 6%%: got %.4f", got)
	}
}

func TestQualifyingIncome_ConcreteScenario(t *testing.T) {
	s := NewMortgageService()

	result, err := s.QualifyingIncome(800_000, 0.045, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(result.DownPayment, 55_000, 0.01) {
		t.Errorf("expected down payment 55000, got %.2f", result.DownPayment)
	}
	if !approxEqual(result.StressRate, 0.065, 1e-12) {
		t.Errorf("expected stress rate 0.065, got %.4f", result.StressRate)
	}
	if result.AmortYears != 25 {
		t.Errorf("expected 25 years, got %d", result.AmortYears)
	}
	// annuity on the 745k loan at 6.5%/25y, grossed up by the 39% GDS cap
	if result.RequiredAnnualIncome < 150_000 || result.RequiredAnnualIncome > 160_000 {
		t.Errorf("required income out of expected band: %.2f", result.RequiredAnnualIncome)
	}
}

func TestQualifyingIncome_MonotoneInPrice(t *testing.T) {
	s := NewMortgageService()

	prev := 0.0
	for price := 200_000.0; price <= 2_000_000; price += 100_000 {
		result, err := s.QualifyingIncome(price, 0.045, 25)
		if err != nil {
			t.Fatalf("unexpected error at price %.0f: %v", price, err)
		}
		if result.RequiredAnnualIncome <= prev {
			t.Fatalf("required income did not increase at price %.0f", price)
		}
		prev = result.RequiredAnnualIncome
	}
}

func TestQualifyingIncome_LongerAmortLowersIncome(t *testing.T) {
	s := NewMortgageService()

	at25, err := s.QualifyingIncome(800_000, 0.045, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at30, err := s.QualifyingIncome(800_000, 0.045, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if at30.RequiredAnnualIncome >= at25.RequiredAnnualIncome {
		t.Errorf("30y income %.2f should be below 25y income %.2f",
			at30.RequiredAnnualIncome, at25.RequiredAnnualIncome)
	}
}

func TestQualifyingIncome_InvalidInput(t *testing.T) {
	s := NewMortgageService()

	cases := []struct {
		name       string
		price      float64
		rate       float64
		amortYears int
	}{
		{"zero price", 0, 0.045, 25},
		{"negative price", -1, 0.045, 25},
		{"price over max", 4_000_000, 0.045, 25},
		{"negative rate", 800_000, -0.01, 25},
		{"nan rate", 800_000, math.NaN(), 25},
		{"infinite rate", 800_000, math.Inf(1), 25},
		{"rate over max", 800_000, 0.30, 25},
		{"zero term", 800_000, 0.045, 0},
		{"term over max", 800_000, 0.045, 41},
	}

	for _, tc := range cases {
		if _, err := s.QualifyingIncome(tc.price, tc.rate, tc.amortYears); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
