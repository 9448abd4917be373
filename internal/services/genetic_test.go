package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Budget = time.Minute
	opts.PopulationSize = 60
	opts.Survivors = 30
	opts.MutationRate = 0.1
	opts.MaxGenerations = 25
	opts.Seed = 42
	return opts
}

func TestGeneticSolverImprovesOnSeed(t *testing.T) {
	p := randomProblem(t, 21, 40, 50)

	out, err := GeneticSolver{Options: testOptions()}.Solve(context.Background(), p, rngFromSeed(42))
	require.NoError(t, err)
	requireFeasible(t, p, out.Solution)
	assert.Equal(t, 25, out.Generations)

	seed, err := NearestNeighborSeed(p)
	require.NoError(t, err)
	assert.LessOrEqual(t, out.Solution.Score, seed.Score)
}

func TestGeneticSolverDeterministicForSeed(t *testing.T) {
	p := randomProblem(t, 8, 35, 40)
	g := GeneticSolver{Options: testOptions()}

	first, err := g.Solve(context.Background(), p, rngFromSeed(7))
	require.NoError(t, err)
	second, err := g.Solve(context.Background(), p, rngFromSeed(7))
	require.NoError(t, err)

	assert.Equal(t, first.Solution.Genes, second.Solution.Genes)
	assert.Equal(t, first.Solution.Score, second.Solution.Score)
}

func TestGeneticSolverParallelDeterministicForSeed(t *testing.T) {
	p := randomProblem(t, 8, 35, 40)
	opts := testOptions()
	opts.Workers = 4
	g := GeneticSolver{Options: opts}

	first, err := g.Solve(context.Background(), p, rngFromSeed(7))
	require.NoError(t, err)
	requireFeasible(t, p, first.Solution)

	second, err := g.Solve(context.Background(), p, rngFromSeed(7))
	require.NoError(t, err)

	assert.Equal(t, first.Solution.Genes, second.Solution.Genes)
}

func TestGeneticSolverRespectsBudget(t *testing.T) {
	p := randomProblem(t, 2, 120, 60)
	opts := DefaultOptions()
	opts.Budget = 300 * time.Millisecond

	start := time.Now()
	out, err := GeneticSolver{Options: opts}.Solve(context.Background(), p, rngFromSeed(1))
	elapsed := time.Since(start)

	require.NoError(t, err)
	requireFeasible(t, p, out.Solution)
	assert.Greater(t, out.Generations, 0)
	// one generation of slack on top of the budget
	assert.Less(t, elapsed, opts.Budget+2*time.Second)
}

func TestGeneticSolverStopsOnCancel(t *testing.T) {
	p := randomProblem(t, 2, 50, 60)
	opts := DefaultOptions()
	opts.Budget = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out, err := GeneticSolver{Options: opts}.Solve(ctx, p, rngFromSeed(1))
	require.NoError(t, err)
	requireFeasible(t, p, out.Solution)
}

func TestGeneticSolverSingleCustomer(t *testing.T) {
	p := randomProblem(t, 1, 1, 10)

	out, err := GeneticSolver{Options: testOptions()}.Solve(context.Background(), p, rngFromSeed(1))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, out.Solution.Genes)
	assert.Equal(t, 0, out.Generations)
}

func TestPopulationDedup(t *testing.T) {
	p := smallProblem(t)
	pop := newPopulation(4)

	require.True(t, pop.admit(p.Candidate([]int{1, 2, 3}), originRandom))
	require.False(t, pop.admit(p.Candidate([]int{1, 2, 3}), originRandom))
	pop.force(p.Candidate([]int{1, 2, 3}), originMutation)
	require.True(t, pop.admit(p.Candidate([]int{1, 3, 2}), originRandom))

	assert.Equal(t, 3, pop.size())
	assert.Equal(t, 1, pop.duplicates)

	pop.truncate(2)
	assert.Equal(t, 2, pop.size())
	assert.Equal(t, []int{1, 3, 2}, pop.members[0].Genes)
	assert.Equal(t, int64(13), pop.best().Score)
}
