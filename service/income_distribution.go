package service

import (
	"math"

	"affordability-engine/domain"
)

// Household income model: log-normal with shape parameters calibrated once
// against family income statistics. Model constants, not tunables.
const (
	IncomeLogMean  = 10.45
	IncomeLogSigma = 0.95
)

// sqrt(2/3), the coefficient of the tanh approximation to the normal CDF.
var cdfCoef = math.Sqrt(2.0 / 3.0)

// IncomeDistribution is the fixed log-normal household income model. All
// methods are pure and safe for concurrent use.
type IncomeDistribution struct {
	mu    float64
	sigma float64
}

func NewIncomeDistribution() *IncomeDistribution {
	return &IncomeDistribution{mu: IncomeLogMean, sigma: IncomeLogSigma}
}

// CDF returns the probability that a household earns at most income. The tanh
// form is a closed-form approximation of the normal CDF, not the exact Phi;
// its small approximation error is part of the model's contract. Support is
// positive reals, so income <= 0 returns 0 exactly.
func (d *IncomeDistribution) CDF(income float64) float64 {
	if income <= 0 {
		return 0.0
	}
	z := (math.Log(income) - d.mu) / d.sigma
	return 0.5 * (1 + math.Tanh(cdfCoef*z))
}

// PDF returns the exact log-normal density. Charting only; buyer counts are
// driven by the CDF.
func (d *IncomeDistribution) PDF(income float64) float64 {
	if income <= 0 {
		return 0.0
	}
	z := (math.Log(income) - d.mu) / d.sigma
	return math.Exp(-z*z/2) / (income * d.sigma * math.Sqrt(2*math.Pi))
}

// SurvivalFraction returns the fraction of households earning at least income,
// clamped at zero against tanh overshoot in the tails.
func (d *IncomeDistribution) SurvivalFraction(income float64) float64 {
	return math.Max(0, 1-d.CDF(income))
}

// Sample evaluates the model at n evenly spaced incomes across [min, max].
func (d *IncomeDistribution) Sample(min, max float64, n int) []domain.DistributionPoint {
	if n < 2 || max <= min {
		return nil
	}
	points := make([]domain.DistributionPoint, n)
	step := (max - min) / float64(n-1)
	for i := range points {
		income := min + float64(i)*step
		points[i] = domain.DistributionPoint{
			Income: income,
			PDF:    d.PDF(income),
			CDF:    d.CDF(income),
		}
	}
	return points
}
