package ports

import (
	"context"
	"cvrp-route-service/internal/domain"
)

// Port: a boundary for storing the best known solution per instance.
type SolutionCache interface {
	// Return the cached solution for key; ok is false on a miss.
	Get(ctx context.Context, key string) (sol domain.Solution, ok bool, err error)
	// Store sol under key. Implementations keep the lower score when one already exists.
	Put(ctx context.Context, key string, sol domain.Solution) error
}
