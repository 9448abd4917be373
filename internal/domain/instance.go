package domain

import "fmt"

// Instance is one CVRP problem as received from upstream: a vehicle capacity
// and the city records, depot first.
type Instance struct {
	Capacity int
	Cities   []City
}

// Validate checks the input contract: positive capacity, contiguous unique ids
// starting at the depot, a zero-demand depot, non-negative demands and no
// customer larger than a vehicle.
func (in Instance) Validate() error {
	if in.Capacity <= 0 {
		return fmt.Errorf("validate instance: capacity must be positive, got %d: %w", in.Capacity, ErrInvalidInstance)
	}
	if len(in.Cities) == 0 {
		return fmt.Errorf("validate instance: depot is missing: %w", ErrInvalidInstance)
	}

	for i, c := range in.Cities {
		if c.ID != i {
			return fmt.Errorf("validate instance: city at position %d has id %d: %w", i, c.ID, ErrInvalidInstance)
		}
		if c.Demand < 0 {
			return fmt.Errorf("validate instance: city %d has negative demand %d: %w", c.ID, c.Demand, ErrInvalidInstance)
		}
	}

	if in.Cities[0].Demand != 0 {
		return fmt.Errorf("validate instance: depot demand must be 0, got %d: %w", in.Cities[0].Demand, ErrInvalidInstance)
	}

	for _, c := range in.Cities[1:] {
		if c.Demand > in.Capacity {
			return fmt.Errorf("validate instance: city %d demand=%d capacity=%d: %w", c.ID, c.Demand, in.Capacity, ErrInfeasibleDemand)
		}
	}

	return nil
}

func (in Instance) Catalog() *Catalog { return NewCatalog(in.Cities) }
