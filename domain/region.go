package domain

import "github.com/paulmach/orb"

// Region is immutable reference data for the demographic breakdown tools: the
// posted contract mortgage rate and the household population estimates are
// scaled against. Loaded once at startup, never mutated.
type Region struct {
	Name         string  `json:"name"`
	ContractRate float64 `json:"contract_rate"`
	Population   float64 `json:"population"`
}

// City is the map-tool counterpart of Region, with coordinates so a map click
// can be resolved to the closest configured city.
type City struct {
	Name         string    `json:"name"`
	Location     orb.Point `json:"location"` // lon, lat
	Population   float64   `json:"population"`
	ContractRate float64   `json:"contract_rate"`
}
