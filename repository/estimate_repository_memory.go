package repository

import (
	"sync"

	"affordability-engine/domain"
)

// EstimateRepositoryMemory is an in-memory implementation of
// EstimateRepository, keeping the history of computed estimates.
type EstimateRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.BuyerEstimate
}

// NewEstimateRepositoryMemory creates a new in-memory estimate repository.
func NewEstimateRepositoryMemory() *EstimateRepositoryMemory {
	return &EstimateRepositoryMemory{
		data: []domain.BuyerEstimate{},
	}
}

// Save stores the estimate in memory.
func (r *EstimateRepositoryMemory) Save(
	input domain.EstimateInput,
	estimate domain.BuyerEstimate,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, estimate)
	return nil
}
