package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	StrategyTrivial = "trivial"
	StrategyExact   = "exact"
	StrategyGenetic = "genetic"
)

// Largest ExactThreshold accepted; 11 customers already means 39.9M orders.
const maxExactThreshold = 12

const defaultSeed int64 = 1

var ErrInvalidOptions = errors.New("invalid solver options")

// Outcome is what every solver hands back.
type Outcome struct {
	Solution    domain.Solution
	Generations int
}

// Solver is the one contract behind the exact and genetic strategies.
type Solver interface {
	Name() string
	Solve(ctx context.Context, p *Problem, rng *rand.Rand) (Outcome, error)
}

// Options tunes a solve. The zero value is not usable; start from DefaultOptions.
type Options struct {
	// Wall-clock budget of the genetic phase, checked between generations.
	Budget time.Duration
	// Seed for the random source; 0 selects a fixed default.
	Seed int64
	// Population target after crossover.
	PopulationSize int
	// Candidates kept by truncation selection each generation.
	Survivors int
	// Per-survivor probability of producing a swap mutant.
	MutationRate float64
	// Instances with fewer customers than this are solved exactly.
	ExactThreshold int
	// Optional cap on generations; 0 means the budget alone stops the run.
	MaxGenerations int
	// Goroutines scoring crossover children; 1 keeps the run single-threaded.
	Workers int
	// Run the route-ledger local search on the winner.
	LocalSearch bool
	// Consult and update the solution cache when one is configured.
	UseCache bool
}

func DefaultOptions() Options {
	return Options{
		Budget:         9590 * time.Millisecond,
		PopulationSize: 400,
		Survivors:      200,
		MutationRate:   0.02,
		ExactThreshold: 9,
		Workers:        1,
		UseCache:       true,
	}
}

func (o Options) Validate() error {
	var errs []error
	if o.Budget <= 0 {
		errs = append(errs, fmt.Errorf("budget must be positive, got %s", o.Budget))
	}
	if o.Survivors < 2 {
		errs = append(errs, fmt.Errorf("survivors must be at least 2, got %d", o.Survivors))
	}
	if o.PopulationSize < o.Survivors {
		errs = append(errs, fmt.Errorf("population size %d must not be below survivors %d", o.PopulationSize, o.Survivors))
	}
	if o.MutationRate < 0 || o.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation rate must be within [0,1], got %g", o.MutationRate))
	}
	if o.ExactThreshold < 0 || o.ExactThreshold > maxExactThreshold {
		errs = append(errs, fmt.Errorf("exact threshold must be within [0,%d], got %d", maxExactThreshold, o.ExactThreshold))
	}
	if o.MaxGenerations < 0 {
		errs = append(errs, fmt.Errorf("max generations must not be negative, got %d", o.MaxGenerations))
	}
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", o.Workers))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("validate options: %w: %w", ErrInvalidOptions, err)
	}
	return nil
}

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
