package distance

import (
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"fmt"
	"math"
)

// EuclideanOracle holds the rounded Euclidean cost of every ordered city pair
// in one flat row-major table, built once and read-only afterwards.
type EuclideanOracle struct {
	n     int
	cells []int64
}

// NewEuclideanOracle builds the n*n table for cities indexed by id.
func NewEuclideanOracle(cities []domain.City) (*EuclideanOracle, error) {
	n := len(cities)
	o := &EuclideanOracle{n: n, cells: make([]int64, n*n)}

	var longest int64
	for i := 0; i < n; i++ {
		if cities[i].ID != i {
			return nil, fmt.Errorf("build euclidean oracle: city at position %d has id %d: %w", i, cities[i].ID, domain.ErrInvalidInstance)
		}
		pi := cities[i].Point()
		for j := i + 1; j < n; j++ {
			d := pi.RoundedDistance(cities[j].Point())
			o.cells[i*n+j] = d
			o.cells[j*n+i] = d
			if d > longest {
				longest = d
			}
		}
	}

	// A decoded score visits at most 2n edges (every customer on its own trip).
	if n > 0 && longest > math.MaxInt64/int64(2*n) {
		return nil, fmt.Errorf("build euclidean oracle: longest edge %d over %d cities: %w", longest, n, domain.ErrScoreOverflow)
	}

	return o, nil
}

func (o *EuclideanOracle) Get(i, j int) int64 { return o.cells[i*o.n+j] }

func (o *EuclideanOracle) Size() int { return o.n }

func (o *EuclideanOracle) Row(i int) []int64 { return o.cells[i*o.n : (i+1)*o.n] }

// EuclideanFactory builds EuclideanOracles behind the ports.OracleFactory contract.
type EuclideanFactory struct{}

func (EuclideanFactory) Build(cities []domain.City) (ports.DistanceOracle, error) {
	o, err := NewEuclideanOracle(cities)
	if err != nil {
		return nil, err
	}
	return o, nil
}
