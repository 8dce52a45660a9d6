package repository

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/pelletier/go-toml/v2"

	"affordability-engine/domain"
)

const weightSumTolerance = 1e-9

type regionConfig struct {
	Name       string  `toml:"name"`
	Rate       float64 `toml:"rate"`
	Population float64 `toml:"population"`
}

type cityConfig struct {
	Name       string  `toml:"name"`
	Lat        float64 `toml:"lat"`
	Lon        float64 `toml:"lon"`
	Population float64 `toml:"population"`
	Rate       float64 `toml:"rate"`
}

type segmentConfig struct {
	Weight           float64 `toml:"weight"`
	IncomeMultiplier float64 `toml:"income_multiplier"`
	AmortYears       int     `toml:"amort_years"`
}

type fileConfig struct {
	Regions  []regionConfig           `toml:"regions"`
	Cities   []cityConfig             `toml:"cities"`
	Segments map[string]segmentConfig `toml:"segments"`
}

// ConfigRepository holds the reference-data tables the engine runs against:
// regions, cities and buyer segment profiles. Read-only after construction,
// so it is safe to share across concurrent requests.
type ConfigRepository struct {
	regions  map[string]domain.Region
	cities   map[string]domain.City
	segments map[domain.BuyerSegment]domain.SegmentProfile
}

// NewConfigRepository returns a repository with the compiled-in reference
// tables: CMHC 2024 buyer demographics and the default region/city data.
func NewConfigRepository() *ConfigRepository {
	r := &ConfigRepository{
		regions:  make(map[string]domain.Region),
		cities:   make(map[string]domain.City),
		segments: make(map[domain.BuyerSegment]domain.SegmentProfile),
	}
	r.applyDefaults()
	return r
}

// LoadConfigRepository reads the reference tables from a TOML file. Sections
// left out of the file keep the compiled-in defaults.
func LoadConfigRepository(path string) (*ConfigRepository, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg fileConfig
	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	r := NewConfigRepository()
	if len(cfg.Regions) > 0 {
		r.regions = make(map[string]domain.Region, len(cfg.Regions))
		for _, rc := range cfg.Regions {
			r.regions[rc.Name] = domain.Region{
				Name:         rc.Name,
				ContractRate: rc.Rate,
				Population:   rc.Population,
			}
		}
	}
	if len(cfg.Cities) > 0 {
		r.cities = make(map[string]domain.City, len(cfg.Cities))
		for _, cc := range cfg.Cities {
			r.cities[cc.Name] = domain.City{
				Name:         cc.Name,
				Location:     orb.Point{cc.Lon, cc.Lat},
				Population:   cc.Population,
				ContractRate: cc.Rate,
			}
		}
	}
	if len(cfg.Segments) > 0 {
		r.segments = make(map[domain.BuyerSegment]domain.SegmentProfile, len(cfg.Segments))
		for name, sc := range cfg.Segments {
			r.segments[domain.BuyerSegment(name)] = domain.SegmentProfile{
				Weight:           sc.Weight,
				IncomeMultiplier: sc.IncomeMultiplier,
				AmortYears:       sc.AmortYears,
			}
		}
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ConfigRepository) applyDefaults() {
	defaults := []domain.Region{
		{Name: "National", ContractRate: 0.045, Population: 20_000_000},
		{Name: "Ontario", ContractRate: 0.047, Population: 15_000_000},
		{Name: "BC", ContractRate: 0.049, Population: 5_300_000},
		{Name: "Alberta", ContractRate: 0.043, Population: 4_500_000},
		{Name: "Quebec", ContractRate: 0.044, Population: 9_000_000},
	}
	for _, region := range defaults {
		r.regions[region.Name] = region
	}

	cities := []domain.City{
		{Name: "Toronto", Location: orb.Point{-79.38, 43.65}, Population: 6_400_000, ContractRate: 0.047},
		{Name: "Vancouver", Location: orb.Point{-123.12, 49.28}, Population: 2_700_000, ContractRate: 0.049},
		{Name: "Montreal", Location: orb.Point{-73.57, 45.50}, Population: 4_300_000, ContractRate: 0.044},
		{Name: "Calgary", Location: orb.Point{-114.07, 51.04}, Population: 1_600_000, ContractRate: 0.043},
		{Name: "Edmonton", Location: orb.Point{-113.49, 53.54}, Population: 1_500_000, ContractRate: 0.043},
	}
	for _, city := range cities {
		r.cities[city.Name] = city
	}

	r.segments = map[domain.BuyerSegment]domain.SegmentProfile{
		domain.SegmentSingle:    {Weight: 0.40, IncomeMultiplier: 1.0},
		domain.SegmentCouple:    {Weight: 0.60, IncomeMultiplier: 0.75},
		domain.SegmentFirstTime: {Weight: 0.45, AmortYears: 30},
		domain.SegmentRepeat:    {Weight: 0.55, AmortYears: 25},
	}
}

func (r *ConfigRepository) validate() error {
	for name, region := range r.regions {
		if region.Population < 0 {
			return fmt.Errorf("region %s has negative population", name)
		}
		if region.ContractRate < 0 || math.IsNaN(region.ContractRate) || math.IsInf(region.ContractRate, 0) {
			return fmt.Errorf("region %s has invalid contract rate", name)
		}
	}
	for name, city := range r.cities {
		if city.Population < 0 {
			return fmt.Errorf("city %s has negative population", name)
		}
		if city.ContractRate < 0 || math.IsNaN(city.ContractRate) || math.IsInf(city.ContractRate, 0) {
			return fmt.Errorf("city %s has invalid contract rate", name)
		}
	}

	for seg, profile := range r.segments {
		if profile.Weight < 0 || profile.Weight > 1 {
			return fmt.Errorf("segment %s has weight outside [0,1]", seg)
		}
		if profile.AmortYears == 0 && profile.IncomeMultiplier <= 0 {
			return fmt.Errorf("segment %s needs an income multiplier or an amortization override", seg)
		}
	}

	// Single+Couple partition all buying households; FirstTime+Repeat is the
	// alternative partition by purchase history. Both must cover the pool.
	household := r.segments[domain.SegmentSingle].Weight + r.segments[domain.SegmentCouple].Weight
	if math.Abs(household-1.0) > weightSumTolerance {
		return fmt.Errorf("single+couple weights must sum to 1, got %.4f", household)
	}
	history := r.segments[domain.SegmentFirstTime].Weight + r.segments[domain.SegmentRepeat].Weight
	if math.Abs(history-1.0) > weightSumTolerance {
		return fmt.Errorf("first_time+repeat weights must sum to 1, got %.4f", history)
	}
	return nil
}

// Region resolves a region key. Unknown keys are a caller precondition
// violation; the selector UI is built from Regions().
func (r *ConfigRepository) Region(name string) (domain.Region, error) {
	region, ok := r.regions[name]
	if !ok {
		return domain.Region{}, fmt.Errorf("unknown region: %s", name)
	}
	return region, nil
}

func (r *ConfigRepository) Regions() []domain.Region {
	regions := make([]domain.Region, 0, len(r.regions))
	for _, region := range r.regions {
		regions = append(regions, region)
	}
	return regions
}

func (r *ConfigRepository) City(name string) (domain.City, error) {
	city, ok := r.cities[name]
	if !ok {
		return domain.City{}, fmt.Errorf("unknown city: %s", name)
	}
	return city, nil
}

func (r *ConfigRepository) Cities() []domain.City {
	cities := make([]domain.City, 0, len(r.cities))
	for _, city := range r.cities {
		cities = append(cities, city)
	}
	return cities
}

// Segments returns the segment profile table. Callers must treat it as
// read-only.
func (r *ConfigRepository) Segments() map[domain.BuyerSegment]domain.SegmentProfile {
	return r.segments
}
