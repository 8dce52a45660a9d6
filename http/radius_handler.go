package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"affordability-engine/domain"
	"affordability-engine/service"
)

type RadiusHandler struct {
	service *service.RadiusService
}

func NewRadiusHandler(service *service.RadiusService) *RadiusHandler {
	return &RadiusHandler{service: service}
}

// EstimateRadius handles the map tool's main query: buyers within a radius
// of a city for a market slice.
func (h *RadiusHandler) EstimateRadius(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.RadiusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validatePriceRange(input.Price); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.EstimateWithinRadius(input)
	if err != nil {
		log.Printf("Error estimating radius buyers: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

type cityComparisonInput struct {
	Price    float64            `json:"price"`
	RadiusKm float64            `json:"radius_km"`
	Filter   domain.BuyerFilter `json:"filter"`
}

// CompareCities evaluates every configured city at the same price and radius.
func (h *RadiusHandler) CompareCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input cityComparisonInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validatePriceRange(input.Price); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.service.CompareCities(input.Price, input.RadiusKm, input.Filter)
	if err != nil {
		log.Printf("Error comparing cities: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, rows)
}

// NearestCity resolves a map click to the closest configured city.
// GET /affordability/nearest?lat=..&lon=..
func (h *RadiusHandler) NearestCity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		http.Error(w, "invalid lat", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		http.Error(w, "invalid lon", http.StatusBadRequest)
		return
	}

	city, err := h.service.NearestCity(lat, lon)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, city)
}
