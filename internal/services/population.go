package services

import (
	"cmp"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/metrics"
	"slices"
)

const (
	originSeed      = "seed"
	originRandom    = "random"
	originCrossover = "crossover"
	originMutation  = "mutation"
)

// population is the GA working set plus the hashes of every candidate it has
// admitted. Owned by the solving goroutine.
type population struct {
	members    []domain.Solution
	visited    map[uint64]struct{}
	admitted   map[string]int
	duplicates int
}

func newPopulation(capacity int) *population {
	return &population{
		members:  make([]domain.Solution, 0, capacity+1),
		visited:  make(map[uint64]struct{}, capacity*8),
		admitted: make(map[string]int, 4),
	}
}

func (p *population) size() int { return len(p.members) }

// admit adds sol unless its hash was seen before; it reports whether sol was added.
func (p *population) admit(sol domain.Solution, origin string) bool {
	if _, ok := p.visited[sol.Hash]; ok {
		p.duplicates++
		return false
	}
	p.force(sol, origin)
	return true
}

// force adds sol and marks it visited regardless of history.
func (p *population) force(sol domain.Solution, origin string) {
	p.visited[sol.Hash] = struct{}{}
	p.members = append(p.members, sol)
	p.admitted[origin]++
}

// truncate stable-sorts members by score and keeps the best k.
func (p *population) truncate(k int) {
	slices.SortStableFunc(p.members, func(a, b domain.Solution) int {
		return cmp.Compare(a.Score, b.Score)
	})
	if len(p.members) > k {
		clear(p.members[k:])
		p.members = p.members[:k]
	}
}

// best returns the lowest-score member, earliest on ties.
func (p *population) best() domain.Solution {
	best := p.members[0]
	for _, m := range p.members[1:] {
		if m.Score < best.Score {
			best = m
		}
	}
	return best
}

// flush publishes accumulated counters.
func (p *population) flush() {
	for origin, n := range p.admitted {
		metrics.Candidates.WithLabelValues(origin).Add(float64(n))
	}
	metrics.Duplicates.Add(float64(p.duplicates))
	clear(p.admitted)
	p.duplicates = 0
}
