package service

const (
	// UI-facing input bounds.
	MinPropertyPrice = 100_000.0
	MaxPropertyPrice = 3_000_000.0
	MinRadiusKm      = 5.0
	MaxRadiusKm      = 100.0

	MaxContractRate   = 0.25 // 25% annual, far above any posted rate
	DefaultAmortYears = 25
	MaxAmortYears     = 40

	// OSFI stress test: qualify at the higher of the benchmark floor and the
	// contract rate plus the buffer, with the payment capped at the GDS share
	// of gross annual income.
	StressRateFloor  = 0.0525
	StressRateBuffer = 0.02
	GrossDebtService = 0.39

	// CMHC tiered minimum down payment.
	DownPaymentTier1Cap  = 500_000.0
	DownPaymentTier2Cap  = 1_500_000.0
	DownPaymentTier1Rate = 0.05
	DownPaymentTier2Rate = 0.10
	DownPaymentTier3Rate = 0.20

	// Price gaps at or below this are noise; comparisons report no winner.
	ComparisonPriceTolerance = 50_000.0

	// Population-within-radius heuristic: pop * (radius/reference)^exponent.
	// A power-law falloff with no census backing; deliberately unclamped, so
	// radii past the reference distance exceed the city population.
	RadiusReferenceKm     = 50.0
	RadiusDensityExponent = 0.7

	// Income-curve sampling window for charts.
	ChartIncomeMin    = 1.0
	ChartIncomeMax    = 400_000.0
	ChartSamplePoints = 1000
)
