package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"math/rand"
	"slices"
)

// ExactSolver enumerates every customer order and keeps the best decoded score.
// Only practical for a handful of customers.
type ExactSolver struct{}

func (ExactSolver) Name() string { return StrategyExact }

func (ExactSolver) Solve(ctx context.Context, p *Problem, _ *rand.Rand) (Outcome, error) {
	sol, err := ExactSolve(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Solution: sol}, nil
}

// ExactSolve walks permutations in lexicographic order. Only a strictly lower
// score replaces the incumbent, so the first optimum seen wins ties.
func ExactSolve(ctx context.Context, p *Problem) (domain.Solution, error) {
	genes := p.Catalog.Customers()
	best := p.Candidate(slices.Clone(genes))

	for i := 0; nextPermutation(genes); i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Solution{}, err
			}
		}
		if score := p.Evaluate(genes); score < best.Score {
			best = p.Candidate(slices.Clone(genes))
		}
	}

	return best, nil
}

// nextPermutation rearranges s into its lexicographic successor and reports
// false once s is the last permutation.
func nextPermutation(s []int) bool {
	i := len(s) - 2
	for i >= 0 && s[i] >= s[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(s) - 1
	for s[j] <= s[i] {
		j--
	}
	s[i], s[j] = s[j], s[i]
	slices.Reverse(s[i+1:])

	return true
}
