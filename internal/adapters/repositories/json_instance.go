package repositories

import (
	"context"
	"cvrp-route-service/internal/domain"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type CitySeed struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Demand int `json:"demand"`
}

// CostSeed is one explicit travel cost. Listing costs replaces the
// Euclidean distances for the whole instance.
type CostSeed struct {
	From int   `json:"from"`
	To   int   `json:"to"`
	Cost int64 `json:"cost"`
}

type InstanceSeed struct {
	Capacity  int        `json:"capacity"`
	Cities    []CitySeed `json:"cities"`
	Distances []CostSeed `json:"distances,omitempty"`
}

// JSONInstanceFile reads an instance from a JSON file.
type JSONInstanceFile struct {
	Path string

	costs []CostSeed
}

func NewJSONInstanceFile(path string) *JSONInstanceFile {
	return &JSONInstanceFile{Path: path}
}

func (f *JSONInstanceFile) LoadInstance(ctx context.Context) (domain.Instance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Instance{}, err
	}

	bytes, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("load instance: read %q: %w", f.Path, err)
	}

	var seed InstanceSeed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return domain.Instance{}, fmt.Errorf("load instance: parse json: %w", err)
	}

	f.costs = seed.Distances
	return seed.Instance(), nil
}

// Costs returns the explicit costs read by the last LoadInstance, nil when
// the file relies on coordinates.
func (f *JSONInstanceFile) Costs() []CostSeed {
	return f.costs
}

// Instance converts the seed, ordering cities by id.
func (s InstanceSeed) Instance() domain.Instance {
	cities := make([]domain.City, 0, len(s.Cities))
	for _, c := range s.Cities {
		cities = append(cities, domain.City{ID: c.ID, X: c.X, Y: c.Y, Demand: c.Demand})
	}
	sort.SliceStable(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })

	return domain.Instance{Capacity: s.Capacity, Cities: cities}
}

// Write inst to path as JSON.
func SaveInstanceJSON(path string, inst domain.Instance) error {
	seed := InstanceSeed{Capacity: inst.Capacity, Cities: make([]CitySeed, 0, len(inst.Cities))}
	for _, c := range inst.Cities {
		seed.Cities = append(seed.Cities, CitySeed{ID: c.ID, X: c.X, Y: c.Y, Demand: c.Demand})
	}

	bytes, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return fmt.Errorf("save instance: encode: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("save instance: write %q: %w", path, err)
	}
	return nil
}
