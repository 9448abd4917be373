package ports

import (
	"context"
	"cvrp-route-service/internal/domain"
)

// Port: a boundary for reading one problem instance from a data source.
type InstanceSource interface {
	// Read the instance; it is validated by the caller, not the source.
	LoadInstance(ctx context.Context) (domain.Instance, error)
}
