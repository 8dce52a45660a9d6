package domain

// DistributionPoint is one sample of the household income model, consumed by
// the presentation layer to draw the income curve.
type DistributionPoint struct {
	Income float64 `json:"income"`
	PDF    float64 `json:"pdf"`
	CDF    float64 `json:"cdf"`
}

// DistributionCurve is the sampled income model plus the qualifying-income
// threshold marker for the current scenario.
type DistributionCurve struct {
	Points          []DistributionPoint `json:"points"`
	ThresholdIncome float64             `json:"threshold_income"`
}
