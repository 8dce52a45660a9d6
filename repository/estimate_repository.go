package repository

import "affordability-engine/domain"

type EstimateRepository interface {
	Save(input domain.EstimateInput, estimate domain.BuyerEstimate) error
}
