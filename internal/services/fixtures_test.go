package services

import (
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/domain"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// smallProblem is a three-customer instance with hand-written costs.
//
//	demands: 1:4 2:5 3:3, capacity 10
//	costs:   0-1:2 0-2:3 0-3:4 1-2:5 1-3:1 2-3:7
func smallProblem(t *testing.T) *Problem {
	t.Helper()

	oracle, err := distance.NewFixedOracle(4, []distance.FixedPair{
		{From: 0, To: 1, Cost: 2},
		{From: 0, To: 2, Cost: 3},
		{From: 0, To: 3, Cost: 4},
		{From: 1, To: 2, Cost: 5},
		{From: 1, To: 3, Cost: 1},
		{From: 2, To: 3, Cost: 7},
	})
	require.NoError(t, err)

	inst := domain.Instance{
		Capacity: 10,
		Cities: []domain.City{
			{ID: 0},
			{ID: 1, Demand: 4},
			{ID: 2, Demand: 5},
			{ID: 3, Demand: 3},
		},
	}
	p, err := NewProblem(inst, oracle)
	require.NoError(t, err)
	return p
}

func randomInstance(seed int64, customers, capacity int) domain.Instance {
	rng := rand.New(rand.NewSource(seed))
	cities := make([]domain.City, customers+1)
	for i := range cities {
		cities[i] = domain.City{ID: i, X: rng.Intn(1000), Y: rng.Intn(1000), Demand: 1 + rng.Intn(capacity/3)}
	}
	cities[0].Demand = 0
	return domain.Instance{Capacity: capacity, Cities: cities}
}

func randomProblem(t *testing.T, seed int64, customers, capacity int) *Problem {
	t.Helper()

	inst := randomInstance(seed, customers, capacity)
	oracle, err := distance.NewEuclideanOracle(inst.Cities)
	require.NoError(t, err)
	p, err := NewProblem(inst, oracle)
	require.NoError(t, err)
	return p
}

func requireFeasible(t *testing.T, p *Problem, sol domain.Solution) {
	t.Helper()

	require.NoError(t, domain.ValidatePermutation(sol.Genes, p.Catalog.Len()))
	require.Equal(t, p.Evaluate(sol.Genes), sol.Score)
	require.Equal(t, hashGenes(sol.Genes), sol.Hash)
	for _, trip := range p.Trips(sol.Genes) {
		load := 0
		for _, c := range trip {
			load += p.Catalog.Demand(c)
		}
		require.LessOrEqual(t, load, p.Capacity)
	}
}
