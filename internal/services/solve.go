package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/metrics"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"time"
)

const StrategyCache = "cache"

type SolveRequest struct {
	Instance domain.Instance
	Options  Options
}

// SolveResult is the answer plus a short report of how it was found.
type SolveResult struct {
	Solution    domain.Solution
	Trips       [][]int
	Rendered    string
	Strategy    string
	Generations int
	Elapsed     time.Duration
	CacheKey    string
	Cached      bool
}

// RouteSolver is the composition point of the engine: it builds the oracle,
// picks the strategy by instance size and talks to the optional cache.
type RouteSolver struct {
	Oracles ports.OracleFactory
	Cache   ports.SolutionCache
}

func NewRouteSolver(oracles ports.OracleFactory, cache ports.SolutionCache) *RouteSolver {
	return &RouteSolver{Oracles: oracles, Cache: cache}
}

// Pick the strategy for an instance with the given number of customers.
func SelectSolver(customers int, opts Options) Solver {
	if customers < opts.ExactThreshold {
		return ExactSolver{}
	}
	return GeneticSolver{Options: opts}
}

func (s *RouteSolver) Solve(ctx context.Context, req SolveRequest) (_ *SolveResult, err error) {
	defer obs.Time(ctx, "solve")(&err)

	start := time.Now()
	inst := req.Instance
	opts := req.Options

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	customers := len(inst.Cities) - 1
	if customers == 0 {
		return &SolveResult{
			Solution: domain.Solution{Genes: []int{}, Hash: hashGenes(nil)},
			Trips:    [][]int{},
			Strategy: StrategyTrivial,
			Elapsed:  time.Since(start),
		}, nil
	}

	oracle, err := s.Oracles.Build(inst.Cities)
	if err != nil {
		return nil, fmt.Errorf("solve: build distance oracle: %w", err)
	}
	problem, err := NewProblem(inst, oracle)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	key := SolveKey(inst, opts)
	useCache := s.Cache != nil && opts.UseCache

	if useCache {
		if cached, ok := s.lookup(ctx, problem, key); ok {
			return s.result(problem, cached, StrategyCache, 0, key, true, start), nil
		}
	}

	solver := SelectSolver(customers, opts)
	out, err := solver.Solve(ctx, problem, rngFromSeed(opts.Seed))
	if err != nil {
		metrics.Solves.WithLabelValues(solver.Name(), "error").Inc()
		return nil, fmt.Errorf("solve: %s: %w", solver.Name(), err)
	}

	best := out.Solution
	if opts.LocalSearch {
		best, err = LocalSearch(ctx, problem, best)
		if err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
	}

	if useCache {
		if err := s.Cache.Put(ctx, key, best); err != nil {
			log.Printf("req_id=%s op=solve.cache.put key=%s err=%v", obs.RequestID(ctx), key, err)
		}
	}

	res := s.result(problem, best, solver.Name(), out.Generations, key, false, start)
	metrics.Solves.WithLabelValues(res.Strategy, "ok").Inc()
	metrics.SolveDuration.WithLabelValues(res.Strategy).Observe(res.Elapsed.Seconds())
	metrics.BestScore.Set(float64(best.Score))

	return res, nil
}

// lookup returns a cached solution re-scored against the current problem.
// Cache failures and stale entries count as misses.
func (s *RouteSolver) lookup(ctx context.Context, p *Problem, key string) (domain.Solution, bool) {
	cached, ok, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Printf("req_id=%s op=solve.cache.get key=%s err=%v", obs.RequestID(ctx), key, err)
		return domain.Solution{}, false
	case !ok:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.Solution{}, false
	}

	if err := domain.ValidatePermutation(cached.Genes, p.Catalog.Len()); err != nil {
		metrics.CacheLookups.WithLabelValues("stale").Inc()
		log.Printf("req_id=%s op=solve.cache.get key=%s err=%v", obs.RequestID(ctx), key, err)
		return domain.Solution{}, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return p.Candidate(cached.Genes), true
}

func (s *RouteSolver) result(p *Problem, sol domain.Solution, strategy string, generations int, key string, cached bool, start time.Time) *SolveResult {
	trips := p.Trips(sol.Genes)
	return &SolveResult{
		Solution:    sol,
		Trips:       trips,
		Rendered:    domain.Render(trips),
		Strategy:    strategy,
		Generations: generations,
		Elapsed:     time.Since(start),
		CacheKey:    key,
		Cached:      cached,
	}
}

// IsInputError reports whether err stems from the caller's instance or options
// rather than from the engine.
func IsInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInstance) ||
		errors.Is(err, domain.ErrInfeasibleDemand) ||
		errors.Is(err, domain.ErrScoreOverflow) ||
		errors.Is(err, ErrInvalidOptions)
}
