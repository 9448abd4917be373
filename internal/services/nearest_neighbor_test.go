package services

import (
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestNeighborSeedSmall(t *testing.T) {
	p := smallProblem(t)

	sol, err := NearestNeighborSeed(p)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, sol.Genes)
	assert.Equal(t, int64(13), sol.Score)
}

func TestNearestNeighborSeedBreaksTiesOnLowestID(t *testing.T) {
	inst := domain.Instance{
		Capacity: 100,
		Cities: []domain.City{
			{ID: 0},
			{ID: 1, X: 1, Y: 0, Demand: 1},
			{ID: 2, X: 0, Y: 1, Demand: 1},
			{ID: 3, X: -1, Y: 0, Demand: 1},
		},
	}
	oracle, err := distance.NewEuclideanOracle(inst.Cities)
	require.NoError(t, err)
	p, err := NewProblem(inst, oracle)
	require.NoError(t, err)

	sol, err := NearestNeighborSeed(p)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, sol.Genes)
}

func TestNearestNeighborSeedFeasible(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		p := randomProblem(t, seed, 80, 30)

		sol, err := NearestNeighborSeed(p)
		require.NoError(t, err)
		requireFeasible(t, p, sol)
	}
}

func TestNearestNeighborSeedWithoutRowAccess(t *testing.T) {
	p := randomProblem(t, 4, 25, 20)
	plain := &Problem{Catalog: p.Catalog, Capacity: p.Capacity, Oracle: getOnly{p.Oracle}}

	withRows, err := NearestNeighborSeed(p)
	require.NoError(t, err)
	withoutRows, err := NearestNeighborSeed(plain)
	require.NoError(t, err)
	assert.Equal(t, withRows, withoutRows)
}

func TestNearestNeighborSeedInfeasibleDemand(t *testing.T) {
	inst := domain.Instance{
		Capacity: 5,
		Cities:   []domain.City{{ID: 0}, {ID: 1, X: 1, Demand: 2}, {ID: 2, X: 2, Demand: 6}},
	}
	oracle, err := distance.NewEuclideanOracle(inst.Cities)
	require.NoError(t, err)
	p, err := NewProblem(inst, oracle)
	require.NoError(t, err)

	_, err = NearestNeighborSeed(p)
	require.ErrorIs(t, err, domain.ErrInfeasibleDemand)
}

func TestNearestNeighborSeedNoCustomers(t *testing.T) {
	inst := domain.Instance{Capacity: 5, Cities: []domain.City{{ID: 0}}}
	oracle, err := distance.NewEuclideanOracle(inst.Cities)
	require.NoError(t, err)
	p, err := NewProblem(inst, oracle)
	require.NoError(t, err)

	sol, err := NearestNeighborSeed(p)
	require.NoError(t, err)
	assert.Empty(t, sol.Genes)
	assert.Equal(t, int64(0), sol.Score)
}

// getOnly hides the optional row extension of an oracle.
type getOnly struct {
	inner interface {
		Get(i, j int) int64
		Size() int
	}
}

func (g getOnly) Get(i, j int) int64 { return g.inner.Get(i, j) }
func (g getOnly) Size() int          { return g.inner.Size() }
