package distance

import (
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"fmt"
	"math"
)

// FixedPair is one directed cost entry of a FixedOracle.
type FixedPair struct {
	From, To int
	Cost     int64
}

// FixedOracle serves explicitly supplied costs, such as road distances
// listed in an instance file, instead of deriving them from coordinates.
type FixedOracle struct {
	n     int
	cells []int64
}

// NewFixedOracle builds an n-city table from pairs. A pair also fills the
// reverse direction unless the reverse is listed explicitly. Every off-diagonal
// entry must end up defined.
func NewFixedOracle(n int, pairs []FixedPair) (*FixedOracle, error) {
	cells := make([]int64, n*n)
	set := make([]bool, n*n)

	var longest int64
	for _, p := range pairs {
		if p.From < 0 || p.From >= n || p.To < 0 || p.To >= n {
			return nil, fmt.Errorf("fixed oracle: pair %d -> %d out of range for %d cities: %w", p.From, p.To, n, domain.ErrInvalidInstance)
		}
		if p.Cost < 0 {
			return nil, fmt.Errorf("fixed oracle: pair %d -> %d has negative cost %d: %w", p.From, p.To, p.Cost, domain.ErrInvalidInstance)
		}
		cells[p.From*n+p.To] = p.Cost
		set[p.From*n+p.To] = true
		longest = max(longest, p.Cost)
	}
	for _, p := range pairs {
		rev := p.To*n + p.From
		if !set[rev] {
			cells[rev] = p.Cost
			set[rev] = true
		}
	}

	for i := 0; i < n; i++ {
		cells[i*n+i] = 0
		for j := 0; j < n; j++ {
			if i != j && !set[i*n+j] {
				return nil, fmt.Errorf("fixed oracle: missing pair %d -> %d: %w", i, j, domain.ErrInvalidInstance)
			}
		}
	}

	if n > 0 && longest > math.MaxInt64/int64(2*n) {
		return nil, fmt.Errorf("fixed oracle: longest edge %d over %d cities: %w", longest, n, domain.ErrScoreOverflow)
	}

	return &FixedOracle{n: n, cells: cells}, nil
}

func (o *FixedOracle) Get(i, j int) int64 { return o.cells[i*o.n+j] }

func (o *FixedOracle) Size() int { return o.n }

// FixedFactory serves the same explicit cost table for every build; the
// cities only fix the table size.
type FixedFactory struct {
	Pairs []FixedPair
}

func (f FixedFactory) Build(cities []domain.City) (ports.DistanceOracle, error) {
	o, err := NewFixedOracle(len(cities), f.Pairs)
	if err != nil {
		return nil, err
	}
	return o, nil
}
