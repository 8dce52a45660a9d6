package http

import (
	"log"
	"net/http"
	"strconv"

	"affordability-engine/service"
)

// DistributionHandler serves the sampled income model so the dashboard can
// draw the distribution curve with the qualifying-income threshold marker.
type DistributionHandler struct {
	service *service.EstimatorService
}

func NewDistributionHandler(service *service.EstimatorService) *DistributionHandler {
	return &DistributionHandler{service: service}
}

// Curve handles GET /affordability/distribution?price=..&region=..
func (h *DistributionHandler) Curve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}
	if err := validatePriceRange(price); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	region := r.URL.Query().Get("region")
	if region == "" {
		http.Error(w, "region is required", http.StatusBadRequest)
		return
	}

	curve, err := h.service.DistributionCurve(price, region)
	if err != nil {
		log.Printf("Error sampling distribution: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, curve)
}
