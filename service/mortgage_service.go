package service

import (
	"errors"
	"fmt"
	"math"

	"affordability-engine/domain"
)

// roundTo2Decimals rounds a float64 to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// MortgageService computes down payments and stress-test qualifying incomes.
// Stateless; every method is pure.
type MortgageService struct{}

func NewMortgageService() *MortgageService {
	return &MortgageService{}
}

// DownPayment applies the tiered minimum down payment schedule: 5% up to the
// first cap, 5% of the first cap plus 10% of the excess up to the second cap,
// then a flat 20%. The mid tier keeps the closed form rather than a hardcoded
// constant so a cap change cannot drift the schedule.
func (s *MortgageService) DownPayment(price float64) float64 {
	switch {
	case price <= DownPaymentTier1Cap:
		return price * DownPaymentTier1Rate
	case price <= DownPaymentTier2Cap:
		return DownPaymentTier1Cap*DownPaymentTier1Rate +
			(price-DownPaymentTier1Cap)*DownPaymentTier2Rate
	default:
		return price * DownPaymentTier3Rate
	}
}

// StressRate returns the qualifying rate: the higher of the benchmark floor
// and the contract rate plus the buffer.
func (s *MortgageService) StressRate(contractRate float64) float64 {
	return math.Max(StressRateFloor, contractRate+StressRateBuffer)
}

// QualifyingIncome computes the minimum gross annual income that passes the
// stress test for the given price: the amortizing monthly payment on the
// financed amount at the stress rate, grossed up by the GDS ceiling.
func (s *MortgageService) QualifyingIncome(
	price, contractRate float64,
	amortYears int,
) (domain.QualifyingIncome, error) {

	if price <= 0 {
		return domain.QualifyingIncome{}, errors.New("invalid price")
	}
	if price > MaxPropertyPrice {
		return domain.QualifyingIncome{}, fmt.Errorf("price exceeds maximum of $%.2f", MaxPropertyPrice)
	}
	if math.IsNaN(contractRate) || math.IsInf(contractRate, 0) || contractRate < 0 {
		return domain.QualifyingIncome{}, errors.New("invalid contract rate")
	}
	if contractRate > MaxContractRate {
		return domain.QualifyingIncome{}, fmt.Errorf("contract rate exceeds maximum of %.2f%%", MaxContractRate*100)
	}
	if amortYears <= 0 {
		return domain.QualifyingIncome{}, errors.New("invalid amortization term")
	}
	if amortYears > MaxAmortYears {
		return domain.QualifyingIncome{}, fmt.Errorf("amortization exceeds maximum of %d years", MaxAmortYears)
	}

	down := s.DownPayment(price)
	loan := price - down
	stress := s.StressRate(contractRate)

	monthlyRate := stress / 12
	n := float64(amortYears * 12)

	var monthly float64
	switch {
	case loan == 0:
		monthly = 0
	case monthlyRate == 0:
		// Unreachable while the benchmark floor holds; the straight-line
		// payment keeps the formula defined if the floor ever goes to zero.
		monthly = loan / n
	default:
		growth := math.Pow(1+monthlyRate, n)
		monthly = loan * (monthlyRate * growth) / (growth - 1)
	}

	required := monthly * 12 / GrossDebtService
	if math.IsNaN(required) || math.IsInf(required, 0) {
		return domain.QualifyingIncome{}, errors.New("degenerate rate produced a non-finite qualifying income")
	}

	return domain.QualifyingIncome{
		RequiredAnnualIncome: roundTo2Decimals(required),
		DownPayment:          roundTo2Decimals(down),
		StressRate:           stress,
		AmortYears:           amortYears,
	}, nil
}
