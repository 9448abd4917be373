package services

import (
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"fmt"
)

// Problem bundles the read-only inputs every solver shares: the catalog, the
// vehicle capacity and the distance oracle built for the catalog.
type Problem struct {
	Catalog  *domain.Catalog
	Capacity int
	Oracle   ports.DistanceOracle
}

func NewProblem(inst domain.Instance, oracle ports.DistanceOracle) (*Problem, error) {
	if oracle.Size() != len(inst.Cities) {
		return nil, fmt.Errorf("new problem: oracle covers %d cities, instance has %d", oracle.Size(), len(inst.Cities))
	}
	return &Problem{
		Catalog:  inst.Catalog(),
		Capacity: inst.Capacity,
		Oracle:   oracle,
	}, nil
}

// Evaluate scores genes with the greedy left-to-right capacity-break rule:
// a gene that fits joins the open trip, otherwise the vehicle returns to the
// depot and starts a new trip at that gene.
func (p *Problem) Evaluate(genes []int) int64 {
	var score int64
	current := 0
	load := 0

	for _, g := range genes {
		d := p.Catalog.Demand(g)
		if load+d <= p.Capacity {
			score += p.Oracle.Get(current, g)
			load += d
		} else {
			score += p.Oracle.Get(current, 0) + p.Oracle.Get(0, g)
			load = d
		}
		current = g
	}
	score += p.Oracle.Get(current, 0)

	return score
}

// Candidate wraps genes into a Solution with score and hash filled in.
// The slice is retained, not copied.
func (p *Problem) Candidate(genes []int) domain.Solution {
	return domain.Solution{
		Genes: genes,
		Score: p.Evaluate(genes),
		Hash:  hashGenes(genes),
	}
}

// Trips derives the trip split of genes.
func (p *Problem) Trips(genes []int) [][]int {
	return domain.SplitTrips(genes, p.Capacity, p.Catalog)
}
