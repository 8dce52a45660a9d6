package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"affordability-engine/domain"
	"affordability-engine/service"
)

type CompareHandler struct {
	service *service.EstimatorService
}

func NewCompareHandler(service *service.EstimatorService) *CompareHandler {
	return &CompareHandler{service: service}
}

func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.ComparisonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validatePriceRange(input.PriceA); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validatePriceRange(input.PriceB); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Compare(input)
	if err != nil {
		log.Printf("Error comparing scenarios: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}
