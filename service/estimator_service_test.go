package service

import (
	"errors"
	"testing"

	"affordability-engine/domain"
	"affordability-engine/repository"
)

type MockEstimateRepository struct {
	SaveCount  int
	ForceError bool
}

func (m *MockEstimateRepository) Save(
	input domain.EstimateInput,
	estimate domain.BuyerEstimate,
) error {
	m.SaveCount++
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

type MockCache struct {
	Data map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(key string) (string, bool) {
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value string) error {
	m.Data[key] = value
	return nil
}

func newTestEstimator(history repository.EstimateRepository, cache repository.CacheRepository) *EstimatorService {
	return NewEstimatorService(
		NewMortgageService(),
		NewIncomeDistribution(),
		repository.NewConfigRepository(),
		history,
		cache,
	)
}

func TestEstimate_SegmentBreakdown(t *testing.T) {
	history := &MockEstimateRepository{}
	estimator := newTestEstimator(history, NewMockCache())

	estimate, err := estimator.Estimate(domain.EstimateInput{Price: 800_000, Region: "National"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(estimate.Segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(estimate.Segments))
	}
	for seg, count := range estimate.Segments {
		if count < 0 {
			t.Errorf("segment %s has negative count: %f", seg, count)
		}
	}

	single := estimate.Segments[domain.SegmentSingle]
	couple := estimate.Segments[domain.SegmentCouple]
	if !approxEqual(estimate.Total, single+couple, 0.011) {
		t.Errorf("total %f should be single+couple %f", estimate.Total, single+couple)
	}

	// couples carry a higher weight and qualify at a lower threshold
	if couple <= single {
		t.Errorf("expected couple count %f above single count %f", couple, single)
	}

	if !approxEqual(estimate.QualifyingIncome.DownPayment, 55_000, 0.01) {
		t.Errorf("expected down payment 55000, got %f", estimate.QualifyingIncome.DownPayment)
	}
	if !approxEqual(estimate.QualifyingIncome.StressRate, 0.065, 1e-12) {
		t.Errorf("expected stress rate 0.065, got %f", estimate.QualifyingIncome.StressRate)
	}

	if history.SaveCount != 1 {
		t.Errorf("expected one history save, got %d", history.SaveCount)
	}
}

func TestEstimate_FirstTimeBonusTerm(t *testing.T) {
	estimator := newTestEstimator(&MockEstimateRepository{}, NewMockCache())

	estimate, err := estimator.Estimate(domain.EstimateInput{Price: 800_000, Region: "National"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// first-time buyers amortize over 30 years, so they clear a lower income
	// bar; with weight 0.45 vs 0.40 their count must exceed singles
	if estimate.Segments[domain.SegmentFirstTime] <= estimate.Segments[domain.SegmentSingle] {
		t.Errorf("expected first-time count above single count")
	}
}

func TestEstimate_UnknownRegion(t *testing.T) {
	history := &MockEstimateRepository{}
	estimator := newTestEstimator(history, NewMockCache())

	_, err := estimator.Estimate(domain.EstimateInput{Price: 800_000, Region: "Atlantis"})
	if err == nil {
		t.Fatalf("expected error for unknown region")
	}
	if history.SaveCount != 0 {
		t.Errorf("repository Save should NOT be called")
	}
}

func TestEstimate_InvalidPrice(t *testing.T) {
	estimator := newTestEstimator(&MockEstimateRepository{}, NewMockCache())

	if _, err := estimator.Estimate(domain.EstimateInput{Price: 0, Region: "National"}); err == nil {
		t.Errorf("expected error for zero price")
	}
	if _, err := estimator.Estimate(domain.EstimateInput{Price: 4_000_000, Region: "National"}); err == nil {
		t.Errorf("expected error for price over maximum")
	}
}

func TestEstimate_ServedFromCache(t *testing.T) {
	history := &MockEstimateRepository{}
	estimator := newTestEstimator(history, NewMockCache())

	input := domain.EstimateInput{Price: 800_000, Region: "National"}
	first, err := estimator.Estimate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := estimator.Estimate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if history.SaveCount != 1 {
		t.Errorf("second call should hit the cache, got %d saves", history.SaveCount)
	}
	if !approxEqual(first.Total, second.Total, 1e-9) {
		t.Errorf("cached total %f differs from computed %f", second.Total, first.Total)
	}
}

func TestCompare_SignificantGap(t *testing.T) {
	estimator := newTestEstimator(&MockEstimateRepository{}, NewMockCache())

	result, err := estimator.Compare(domain.ComparisonInput{
		PriceA: 800_000,
		PriceB: 1_000_000,
		Region: "National",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Significant {
		t.Fatalf("200k gap should be significant")
	}
	// the cheaper property clears a lower income bar and reaches more buyers
	if result.Winner != "A" {
		t.Errorf("expected winner A, got %q", result.Winner)
	}
	if result.Margin <= 0 {
		t.Errorf("expected positive margin, got %f", result.Margin)
	}
}

func TestCompare_NoiseLevelGap(t *testing.T) {
	estimator := newTestEstimator(&MockEstimateRepository{}, NewMockCache())

	result, err := estimator.Compare(domain.ComparisonInput{
		PriceA: 800_000,
		PriceB: 810_000,
		Region: "National",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Significant {
		t.Errorf("10k gap should not be significant")
	}
	if result.Winner != "" {
		t.Errorf("no winner expected, got %q", result.Winner)
	}
}

func TestDistributionCurve(t *testing.T) {
	estimator := newTestEstimator(&MockEstimateRepository{}, NewMockCache())

	curve, err := estimator.DistributionCurve(800_000, "National")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(curve.Points) != ChartSamplePoints {
		t.Errorf("expected %d points, got %d", ChartSamplePoints, len(curve.Points))
	}
	if curve.ThresholdIncome <= 0 {
		t.Errorf("expected positive threshold, got %f", curve.ThresholdIncome)
	}
}
