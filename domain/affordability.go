package domain

type EstimateInput struct {
	Price  float64 `json:"price"`
	Region string  `json:"region"`
}

// QualifyingIncome is the stress-test result for one price, carrying the
// inputs used so the caller can display them alongside the threshold.
type QualifyingIncome struct {
	RequiredAnnualIncome float64 `json:"required_annual_income"`
	DownPayment          float64 `json:"down_payment"`
	StressRate           float64 `json:"stress_rate"`
	AmortYears           int     `json:"amort_years"`
}

// BuyerEstimate is the per-segment buyer breakdown for one scenario.
// Total is Single+Couple only; see BuyerSegment.
type BuyerEstimate struct {
	Price            float64                  `json:"price"`
	Region           string                   `json:"region"`
	Segments         map[BuyerSegment]float64 `json:"segments"`
	Total            float64                  `json:"total"`
	QualifyingIncome QualifyingIncome         `json:"qualifying_income"`
}

type ComparisonInput struct {
	PriceA float64 `json:"price_a"`
	PriceB float64 `json:"price_b"`
	Region string  `json:"region"`
}

// ScenarioComparison pits two prices against each other in the same region.
// When the prices are within the significance tolerance no winner is declared.
type ScenarioComparison struct {
	EstimateA   BuyerEstimate `json:"estimate_a"`
	EstimateB   BuyerEstimate `json:"estimate_b"`
	Winner      string        `json:"winner,omitempty"` // "A", "B", or "" when not significant
	Margin      float64       `json:"margin"`
	Significant bool          `json:"significant"`
}
