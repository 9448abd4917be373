package services

import (
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"fmt"
	"math"
)

// Build a seed solution using a greedy capacity-aware nearest-neighbor walk.
//
// From the current position the closest unvisited customer that still fits
// in the open trip is chosen. When nothing fits the vehicle returns to the
// depot and the walk continues with an empty trip.
// It does not attempt global optimization; it seeds the population.
func NearestNeighborSeed(p *Problem) (domain.Solution, error) {
	n := p.Catalog.Len()
	customers := p.Catalog.CustomerCount()
	if customers == 0 {
		return domain.Solution{Genes: []int{}, Hash: hashGenes(nil)}, nil
	}

	rows, hasRows := p.Oracle.(ports.DistanceRowOracle)
	cost := func(from, to int) int64 {
		if hasRows {
			return rows.Row(from)[to]
		}
		return p.Oracle.Get(from, to)
	}

	visited := newBitset(n)
	genes := make([]int, 0, customers)

	current := 0
	load := 0
	var total int64

	for len(genes) < customers {
		best := -1
		bestCost := int64(math.MaxInt64)

		// Strict comparison keeps the lowest id on ties.
		for c := 1; c < n; c++ {
			if visited.has(c) || load+p.Catalog.Demand(c) > p.Capacity {
				continue
			}
			if d := cost(current, c); d < bestCost {
				bestCost = d
				best = c
			}
		}

		if best == -1 {
			if current == 0 {
				return domain.Solution{}, fmt.Errorf("nearest neighbor seed: no remaining customer fits an empty vehicle of capacity %d: %w", p.Capacity, domain.ErrInfeasibleDemand)
			}
			total += cost(current, 0)
			current = 0
			load = 0
			continue
		}

		visited.set(best)
		genes = append(genes, best)
		total += bestCost
		load += p.Catalog.Demand(best)
		current = best
	}
	total += cost(current, 0)

	sol := p.Candidate(genes)
	if sol.Score != total {
		return domain.Solution{}, fmt.Errorf("nearest neighbor seed: walk cost %d differs from decoded score %d", total, sol.Score)
	}

	return sol, nil
}
