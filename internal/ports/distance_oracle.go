package ports

import "cvrp-route-service/internal/domain"

// Contract for the precomputed city-to-city cost table.
// Lookups are constant time and cannot fail once the oracle is built.
type DistanceOracle interface {
	domain.Distances
	// Return the number of cities the oracle covers, depot included.
	Size() int
}

// Builds a DistanceOracle for a set of cities.
type OracleFactory interface {
	Build(cities []domain.City) (DistanceOracle, error)
}
