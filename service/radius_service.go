package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"affordability-engine/domain"
	"affordability-engine/repository"
)

// RadiusService is the map-tool variant of the estimator: buyers within a
// radius of a city center, with a market-slice filter, plus the cross-city
// comparison table.
type RadiusService struct {
	mortgage  *MortgageService
	income    *IncomeDistribution
	estimator *EstimatorService
	config    *repository.ConfigRepository
}

func NewRadiusService(
	mortgage *MortgageService,
	income *IncomeDistribution,
	estimator *EstimatorService,
	config *repository.ConfigRepository,
) *RadiusService {
	return &RadiusService{
		mortgage:  mortgage,
		income:    income,
		estimator: estimator,
		config:    config,
	}
}

// PopulationWithinRadius scales a city population by the power-law density
// heuristic. Not a census lookup, and unclamped: a 100km radius yields more
// than the city population.
func (s *RadiusService) PopulationWithinRadius(cityPopulation, radiusKm float64) float64 {
	return cityPopulation * math.Pow(radiusKm/RadiusReferenceKm, RadiusDensityExponent)
}

// EstimateWithinRadius estimates buyers for a price within a radius of a
// city, narrowed to the selected market slice.
func (s *RadiusService) EstimateWithinRadius(input domain.RadiusInput) (domain.RadiusEstimate, error) {
	if input.RadiusKm < MinRadiusKm || input.RadiusKm > MaxRadiusKm {
		return domain.RadiusEstimate{}, fmt.Errorf("radius must be between %.0f and %.0f km", MinRadiusKm, MaxRadiusKm)
	}

	city, err := s.config.City(input.City)
	if err != nil {
		return domain.RadiusEstimate{}, err
	}

	single, err := s.mortgage.QualifyingIncome(input.Price, city.ContractRate, DefaultAmortYears)
	if err != nil {
		return domain.RadiusEstimate{}, err
	}

	incomeNeeded, populationFactor, err := s.applyFilter(input.Filter, single.RequiredAnnualIncome)
	if err != nil {
		return domain.RadiusEstimate{}, err
	}

	populationInRadius := s.PopulationWithinRadius(city.Population, input.RadiusKm)
	buyers := s.income.SurvivalFraction(incomeNeeded) * populationInRadius * populationFactor

	// Full segment breakdown at the radius-scaled population.
	breakdown, err := s.estimator.EstimateForPopulation(input.Price, city.ContractRate, populationInRadius)
	if err != nil {
		return domain.RadiusEstimate{}, err
	}

	return domain.RadiusEstimate{
		City:               city.Name,
		RadiusKm:           input.RadiusKm,
		Filter:             input.Filter,
		PopulationInRadius: roundTo2Decimals(populationInRadius),
		IncomeNeeded:       roundTo2Decimals(incomeNeeded),
		DownPayment:        single.DownPayment,
		Buyers:             roundTo2Decimals(buyers),
		Segments:           breakdown.Segments,
	}, nil
}

// CompareCities evaluates every configured city at the same price, radius and
// filter, sorted by buyer count descending.
func (s *RadiusService) CompareCities(
	price, radiusKm float64,
	filter domain.BuyerFilter,
) ([]domain.CityBuyers, error) {

	if radiusKm < MinRadiusKm || radiusKm > MaxRadiusKm {
		return nil, fmt.Errorf("radius must be between %.0f and %.0f km", MinRadiusKm, MaxRadiusKm)
	}

	cities := s.config.Cities()
	rows := make([]domain.CityBuyers, 0, len(cities))
	for _, city := range cities {
		single, err := s.mortgage.QualifyingIncome(price, city.ContractRate, DefaultAmortYears)
		if err != nil {
			return nil, fmt.Errorf("city %s: %w", city.Name, err)
		}
		incomeNeeded, populationFactor, err := s.applyFilter(filter, single.RequiredAnnualIncome)
		if err != nil {
			return nil, err
		}
		buyers := s.income.SurvivalFraction(incomeNeeded) *
			s.PopulationWithinRadius(city.Population, radiusKm) * populationFactor
		rows = append(rows, domain.CityBuyers{
			City:       city.Name,
			Population: city.Population,
			Buyers:     roundTo2Decimals(buyers),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Buyers > rows[j].Buyers
	})
	return rows, nil
}

// NearestCity resolves a map click to the closest configured city by
// geodesic distance.
func (s *RadiusService) NearestCity(lat, lon float64) (domain.City, error) {
	cities := s.config.Cities()
	if len(cities) == 0 {
		return domain.City{}, errors.New("no cities configured")
	}

	point := orb.Point{lon, lat}
	nearest := cities[0]
	best := geo.Distance(point, nearest.Location)
	for _, city := range cities[1:] {
		if d := geo.Distance(point, city.Location); d < best {
			best = d
			nearest = city
		}
	}
	return nearest, nil
}

// applyFilter maps a market slice to the income threshold and population
// share it represents. Couples reuse the couple segment's income multiplier
// and weight; singles keep the single income at the single weight.
func (s *RadiusService) applyFilter(
	filter domain.BuyerFilter,
	singleIncome float64,
) (incomeNeeded, populationFactor float64, err error) {

	segments := s.config.Segments()
	switch filter {
	case domain.FilterTotalMarket, "":
		return singleIncome, 1.0, nil
	case domain.FilterCouplesOnly:
		couple := segments[domain.SegmentCouple]
		return singleIncome * couple.IncomeMultiplier, couple.Weight, nil
	case domain.FilterSinglesOnly:
		return singleIncome, segments[domain.SegmentSingle].Weight, nil
	default:
		return 0, 0, fmt.Errorf("unknown buyer filter: %s", filter)
	}
}
