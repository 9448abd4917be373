package services

import (
	"context"
	"cvrp-route-service/internal/domain"
	"fmt"
)

const maxLocalSearchPasses = 50

// LocalSearch polishes sol with first-improvement moves on per-trip route
// ledgers: swaps and relocations inside a trip, and customer exchanges between
// trips. Only moves that keep the decoded trip split are applied, so the
// returned genes decode to exactly the improved trips.
func LocalSearch(ctx context.Context, p *Problem, sol domain.Solution) (domain.Solution, error) {
	if len(sol.Genes) < 2 {
		return sol, nil
	}

	trips := p.Trips(sol.Genes)
	routes := make([]*domain.Route, len(trips))
	for i, trip := range trips {
		routes[i] = domain.NewRoute(p.Catalog, p.Oracle, trip...)
	}

	for pass := 0; pass < maxLocalSearchPasses && ctx.Err() == nil; pass++ {
		improved := false
		for k := range routes {
			if improveWithinRoute(p, routes, k) {
				improved = true
			}
		}
		if exchangeBetweenRoutes(p, routes) {
			improved = true
		}
		if !improved {
			break
		}
	}

	out := p.Candidate(flatten(routes))
	if total := ledgerTotal(routes); out.Score != total {
		return domain.Solution{}, fmt.Errorf("local search: decoded score %d differs from route ledgers %d", out.Score, total)
	}
	if out.Score > sol.Score {
		return sol, nil
	}

	return out, nil
}

// improveWithinRoute reorders the trip at routes[k]. The load stays the same,
// but a new first city may fit the previous trip's leftover capacity, so
// every accepted move is checked against the decoded split.
func improveWithinRoute(p *Problem, routes []*domain.Route, k int) bool {
	r := routes[k]
	improved := false
	n := len(r.Cities)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			before := r.TotalDistance
			_ = r.SwapPositions(i, j)
			if r.TotalDistance < before && splitPreserved(p, routes) {
				improved = true
				continue
			}
			_ = r.SwapPositions(i, j)
		}
	}

	for i := 0; i < n; i++ {
		for pos := 0; pos < n; pos++ {
			if pos == i {
				continue
			}
			city := r.Cities[i]
			before := r.TotalDistance
			r.Remove(city)
			r.Insert(city, pos)
			if r.TotalDistance < before && splitPreserved(p, routes) {
				improved = true
				continue
			}
			r.Remove(city)
			r.Insert(city, i)
		}
	}

	return improved
}

func exchangeBetweenRoutes(p *Problem, routes []*domain.Route) bool {
	improved := false

	for a := 0; a < len(routes); a++ {
		for b := a + 1; b < len(routes); b++ {
			ra, rb := routes[a], routes[b]
			for i := 0; i < len(ra.Cities); i++ {
				for j := 0; j < len(rb.Cities); j++ {
					ca, cb := ra.Cities[i], rb.Cities[j]
					if !ra.CanAccept(cb, p.Capacity+p.Catalog.Demand(ca)) ||
						!rb.CanAccept(ca, p.Capacity+p.Catalog.Demand(cb)) {
						continue
					}

					before := ra.TotalDistance + rb.TotalDistance
					ra.SwapOut(ca, cb)
					rb.SwapOut(cb, ca)
					if ra.TotalDistance+rb.TotalDistance < before && splitPreserved(p, routes) {
						improved = true
						continue
					}
					ra.SwapOut(cb, ca)
					rb.SwapOut(ca, cb)
				}
			}
		}
	}

	return improved
}

// splitPreserved reports whether decoding the concatenated routes yields the same trips.
func splitPreserved(p *Problem, routes []*domain.Route) bool {
	trips := p.Trips(flatten(routes))
	if len(trips) != len(routes) {
		return false
	}
	for i, trip := range trips {
		if len(trip) != len(routes[i].Cities) {
			return false
		}
	}
	return true
}

func flatten(routes []*domain.Route) []int {
	n := 0
	for _, r := range routes {
		n += len(r.Cities)
	}
	genes := make([]int, 0, n)
	for _, r := range routes {
		genes = append(genes, r.Cities...)
	}
	return genes
}

func ledgerTotal(routes []*domain.Route) int64 {
	var total int64
	for _, r := range routes {
		total += r.TotalDistance
	}
	return total
}
