package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"affordability-engine/domain"
	"affordability-engine/service"
)

type EstimateHandler struct {
	service *service.EstimatorService
}

func NewEstimateHandler(service *service.EstimatorService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.EstimateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validatePriceRange(input.Price); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Estimate(input)
	if err != nil {
		log.Printf("Error estimating buyers: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

// validatePriceRange enforces the UI price bounds at the edge so the engine
// only ever sees sane scenarios.
func validatePriceRange(price float64) error {
	if price < service.MinPropertyPrice || price > service.MaxPropertyPrice {
		return fmt.Errorf("price must be between $%.0f and $%.0f", service.MinPropertyPrice, service.MaxPropertyPrice)
	}
	return nil
}

// writeJSON encodes into a buffer first so a failed encode never writes a
// partial body after the header.
func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
