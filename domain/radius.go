package domain

// BuyerFilter narrows a radius estimate to one slice of the market.
type BuyerFilter string

const (
	FilterTotalMarket BuyerFilter = "total"
	FilterCouplesOnly BuyerFilter = "couples"
	FilterSinglesOnly BuyerFilter = "singles"
)

type RadiusInput struct {
	City     string      `json:"city"`
	RadiusKm float64     `json:"radius_km"`
	Price    float64     `json:"price"`
	Filter   BuyerFilter `json:"filter"`
}

// RadiusEstimate is the map-tool result: buyers within a radius of a city
// center, for the selected market slice. PopulationInRadius comes from a
// power-law density heuristic, not census data.
type RadiusEstimate struct {
	City               string                   `json:"city"`
	RadiusKm           float64                  `json:"radius_km"`
	Filter             BuyerFilter              `json:"filter"`
	PopulationInRadius float64                  `json:"population_in_radius"`
	IncomeNeeded       float64                  `json:"income_needed"`
	DownPayment        float64                  `json:"down_payment"`
	Buyers             float64                  `json:"buyers"`
	Segments           map[BuyerSegment]float64 `json:"segments"`
}

// CityBuyers is one row of the cross-city comparison table: every configured
// city evaluated at the same price, radius and filter.
type CityBuyers struct {
	City       string  `json:"city"`
	Population float64 `json:"population"`
	Buyers     float64 `json:"buyers"`
}
