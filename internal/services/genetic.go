package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/metrics"
	"cvrp-route-service/internal/platform/obs"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
)

// Breeding gives up on a generation after this many draws per population slot,
// which only happens when nearly every child of the survivors was seen before.
const breedAttemptsPerSlot = 20

// GeneticSolver runs a time-boxed generational GA over customer permutations,
// seeded with the nearest-neighbor solution.
type GeneticSolver struct {
	Options Options
}

func (GeneticSolver) Name() string { return StrategyGenetic }

// Solve evolves until the budget, the generation cap or ctx ends the run and
// returns the best candidate ever retained. The stop conditions are checked
// only between generations.
func (g GeneticSolver) Solve(ctx context.Context, p *Problem, rng *rand.Rand) (Outcome, error) {
	opts := g.Options
	start := time.Now()
	deadline := start.Add(opts.Budget)

	seed, err := NearestNeighborSeed(p)
	if err != nil {
		return Outcome{}, fmt.Errorf("genetic: %w", err)
	}

	customers := p.Catalog.CustomerCount()
	if customers < 2 {
		return Outcome{Solution: seed}, nil
	}

	pop := newPopulation(opts.PopulationSize)
	defer pop.flush()

	pop.admit(seed, originSeed)
	base := p.Catalog.Customers()
	for attempts := 0; pop.size() < opts.PopulationSize && attempts < opts.PopulationSize*breedAttemptsPerSlot; attempts++ {
		genes := make([]int, len(base))
		copy(genes, base)
		rng.Shuffle(len(genes), func(i, j int) { genes[i], genes[j] = genes[j], genes[i] })
		pop.admit(p.Candidate(genes), originRandom)
	}

	best := pop.best()
	log.Printf("req_id=%s op=genetic.init population=%d best=%d dur=%dms",
		obs.RequestID(ctx), pop.size(), best.Score, time.Since(start).Milliseconds())

	generation := 0
	for time.Now().Before(deadline) && ctx.Err() == nil {
		if opts.MaxGenerations > 0 && generation >= opts.MaxGenerations {
			break
		}

		pop.truncate(opts.Survivors)
		survivors := pop.size()

		if survivors >= 2 {
			if opts.Workers > 1 {
				if err := g.breedParallel(ctx, p, pop, rng, survivors); err != nil {
					break
				}
			} else {
				g.breed(p, pop, rng, survivors)
			}
		}

		for i := 0; i < survivors; i++ {
			if rng.Float64() < opts.MutationRate {
				mutant := swapMutation(pop.members[i].Genes, rng)
				pop.force(p.Candidate(mutant), originMutation)
			}
		}

		if cand := pop.best(); cand.Score < best.Score {
			best = cand
		}
		generation++
	}

	if err := domain.ValidatePermutation(best.Genes, p.Catalog.Len()); err != nil {
		return Outcome{}, fmt.Errorf("genetic: best candidate: %w", err)
	}

	metrics.Generations.Observe(float64(generation))
	log.Printf("req_id=%s op=genetic.evolve generations=%d best=%d dur=%dms",
		obs.RequestID(ctx), generation, best.Score, time.Since(start).Milliseconds())

	return Outcome{Solution: best, Generations: generation}, nil
}

// breed refills the population with OX1 children of random survivor pairs.
// Each child is admitted on its own unless its hash was already visited.
func (g GeneticSolver) breed(p *Problem, pop *population, rng *rand.Rand, survivors int) {
	target := g.Options.PopulationSize
	n := p.Catalog.CustomerCount()

	for attempts := 0; pop.size() < target && attempts < target*breedAttemptsPerSlot; attempts++ {
		c1, c2, ok := drawChildren(pop, rng, survivors, n)
		if !ok {
			continue
		}
		pop.admit(p.Candidate(c1), originCrossover)
		pop.admit(p.Candidate(c2), originCrossover)
	}
}

// breedParallel draws children in batches from rng on the calling goroutine,
// scores them on a worker pool and admits them afterwards in draw order, so
// among duplicates the earliest drawn child wins.
func (g GeneticSolver) breedParallel(ctx context.Context, p *Problem, pop *population, rng *rand.Rand, survivors int) error {
	target := g.Options.PopulationSize
	n := p.Catalog.CustomerCount()
	maxAttempts := target * breedAttemptsPerSlot

	for attempts := 0; pop.size() < target && attempts < maxAttempts; {
		need := (target - pop.size() + 1) / 2
		pairs := make([][2][]int, 0, need)
		for len(pairs) < need && attempts < maxAttempts {
			attempts++
			c1, c2, ok := drawChildren(pop, rng, survivors, n)
			if !ok {
				continue
			}
			pairs = append(pairs, [2][]int{c1, c2})
		}

		scored := make([][2]domain.Solution, len(pairs))
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(g.Options.Workers)
		for i := range pairs {
			i := i
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				scored[i][0] = p.Candidate(pairs[i][0])
				scored[i][1] = p.Candidate(pairs[i][1])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return fmt.Errorf("breed parallel: %w", err)
		}

		for _, pair := range scored {
			if pop.size() >= target {
				break
			}
			pop.admit(pair[0], originCrossover)
			pop.admit(pair[1], originCrossover)
		}
	}

	return nil
}

// drawChildren picks two distinct survivors and a window and returns both
// role-swapped OX1 children. ok is false when the draw was rejected.
func drawChildren(pop *population, rng *rand.Rand, survivors, n int) (c1, c2 []int, ok bool) {
	i := rng.Intn(survivors)
	j := rng.Intn(survivors)
	if i == j {
		return nil, nil, false
	}

	a, b, ok := randomWindow(rng, n)
	if !ok {
		return nil, nil, false
	}

	p1 := pop.members[i].Genes
	p2 := pop.members[j].Genes
	return OrderCrossover(p1, p2, a, b), OrderCrossover(p2, p1, a, b), true
}
