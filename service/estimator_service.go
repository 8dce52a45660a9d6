package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/cespare/xxhash/v2"

	"affordability-engine/domain"
	"affordability-engine/repository"
)

// EstimatorService turns a price and a region into a per-segment buyer
// estimate. The computation itself is pure; the repository records history
// and the cache serves repeated scenarios.
type EstimatorService struct {
	mortgage *MortgageService
	income   *IncomeDistribution
	config   *repository.ConfigRepository
	history  repository.EstimateRepository
	cache    repository.CacheRepository
}

func NewEstimatorService(
	mortgage *MortgageService,
	income *IncomeDistribution,
	config *repository.ConfigRepository,
	history repository.EstimateRepository,
	cache repository.CacheRepository,
) *EstimatorService {
	return &EstimatorService{
		mortgage: mortgage,
		income:   income,
		config:   config,
		history:  history,
		cache:    cache,
	}
}

// Estimate computes the buyer breakdown for a price in a region.
func (s *EstimatorService) Estimate(input domain.EstimateInput) (domain.BuyerEstimate, error) {
	region, err := s.config.Region(input.Region)
	if err != nil {
		return domain.BuyerEstimate{}, err
	}

	key := estimateCacheKey(region.Name, input.Price)
	if cached, ok := s.cache.Get(key); ok {
		var estimate domain.BuyerEstimate
		if err := json.Unmarshal([]byte(cached), &estimate); err == nil {
			return estimate, nil
		}
		// fall through and recompute on a corrupt entry
	}

	estimate, err := s.EstimateForPopulation(input.Price, region.ContractRate, region.Population)
	if err != nil {
		return domain.BuyerEstimate{}, err
	}
	estimate.Region = region.Name

	if encoded, err := json.Marshal(estimate); err == nil {
		if err := s.cache.Set(key, string(encoded)); err != nil {
			log.Printf("Warning: failed to cache estimate: %v", err)
		}
	}

	// Keep the history (not critical if it fails).
	if err := s.history.Save(input, estimate); err != nil {
		log.Printf("Warning: failed to save estimate: %v", err)
	}

	return estimate, nil
}

// EstimateForPopulation is the pure core of the estimator, shared by the
// regional and radius variants. For each segment it derives an effective
// qualifying income and scales the distribution's survival fraction by the
// population and the segment weight. The returned Total is Single+Couple:
// FirstTime/Repeat re-partition the same households and would double-count.
func (s *EstimatorService) EstimateForPopulation(
	price, contractRate, population float64,
) (domain.BuyerEstimate, error) {

	if population < 0 {
		return domain.BuyerEstimate{}, fmt.Errorf("invalid population: %.0f", population)
	}

	single, err := s.mortgage.QualifyingIncome(price, contractRate, DefaultAmortYears)
	if err != nil {
		return domain.BuyerEstimate{}, err
	}

	segments := s.config.Segments()
	counts := make(map[domain.BuyerSegment]float64, len(segments))
	for seg, profile := range segments {
		income := single.RequiredAnnualIncome
		if profile.AmortYears != 0 {
			qi, err := s.mortgage.QualifyingIncome(price, contractRate, profile.AmortYears)
			if err != nil {
				return domain.BuyerEstimate{}, err
			}
			income = qi.RequiredAnnualIncome
		} else if profile.IncomeMultiplier > 0 {
			// Couples qualify at a fraction of the single income for the
			// same payment. A scale on the threshold, not a re-derivation
			// of joint underwriting.
			income = single.RequiredAnnualIncome * profile.IncomeMultiplier
		}
		counts[seg] = roundTo2Decimals(s.income.SurvivalFraction(income) * population * profile.Weight)
	}

	return domain.BuyerEstimate{
		Price:            price,
		Segments:         counts,
		Total:            roundTo2Decimals(counts[domain.SegmentSingle] + counts[domain.SegmentCouple]),
		QualifyingIncome: single,
	}, nil
}

// Compare estimates two prices in the same region and declares the scenario
// with the larger household total the winner. Prices within the tolerance are
// reported as not significant instead, so noise-level gaps never pick a side.
func (s *EstimatorService) Compare(input domain.ComparisonInput) (domain.ScenarioComparison, error) {
	estimateA, err := s.Estimate(domain.EstimateInput{Price: input.PriceA, Region: input.Region})
	if err != nil {
		return domain.ScenarioComparison{}, fmt.Errorf("scenario A: %w", err)
	}
	estimateB, err := s.Estimate(domain.EstimateInput{Price: input.PriceB, Region: input.Region})
	if err != nil {
		return domain.ScenarioComparison{}, fmt.Errorf("scenario B: %w", err)
	}

	comparison := domain.ScenarioComparison{
		EstimateA:   estimateA,
		EstimateB:   estimateB,
		Margin:      roundTo2Decimals(math.Abs(estimateA.Total - estimateB.Total)),
		Significant: math.Abs(input.PriceA-input.PriceB) > ComparisonPriceTolerance,
	}
	if comparison.Significant {
		if estimateA.Total > estimateB.Total {
			comparison.Winner = "A"
		} else {
			comparison.Winner = "B"
		}
	}
	return comparison, nil
}

// DistributionCurve samples the income model across the chart window and
// marks the qualifying-income threshold for the scenario.
func (s *EstimatorService) DistributionCurve(price float64, regionName string) (domain.DistributionCurve, error) {
	region, err := s.config.Region(regionName)
	if err != nil {
		return domain.DistributionCurve{}, err
	}
	qi, err := s.mortgage.QualifyingIncome(price, region.ContractRate, DefaultAmortYears)
	if err != nil {
		return domain.DistributionCurve{}, err
	}
	return domain.DistributionCurve{
		Points:          s.income.Sample(ChartIncomeMin, ChartIncomeMax, ChartSamplePoints),
		ThresholdIncome: qi.RequiredAnnualIncome,
	}, nil
}

func estimateCacheKey(region string, price float64) string {
	return fmt.Sprintf("estimate:%x", xxhash.Sum64String(fmt.Sprintf("%s|%.2f", region, price)))
}
