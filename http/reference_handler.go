package http

import (
	"net/http"
	"sort"

	"affordability-engine/domain"
	"affordability-engine/repository"
)

// ReferenceHandler exposes the reference tables so selector widgets only ever
// offer valid region and city keys.
type ReferenceHandler struct {
	config *repository.ConfigRepository
}

func NewReferenceHandler(config *repository.ConfigRepository) *ReferenceHandler {
	return &ReferenceHandler{config: config}
}

type referenceData struct {
	Regions []domain.Region `json:"regions"`
	Cities  []domain.City   `json:"cities"`
}

func (h *ReferenceHandler) Reference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	regions := h.config.Regions()
	sort.Slice(regions, func(i, j int) bool { return regions[i].Name < regions[j].Name })
	cities := h.config.Cities()
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })

	writeJSON(w, referenceData{Regions: regions, Cities: cities})
}
