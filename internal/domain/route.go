package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Distances is the read-only cost lookup a Route needs for its bookkeeping.
type Distances interface {
	Get(i, j int) int64
}

// Route is one depot-to-depot trip with incremental cost bookkeeping.
// TotalDistance always equals the cost of depot -> Cities... -> depot and
// UsedCapacity the demand sum of Cities; every edit keeps both in sync in
// constant time apart from the slice splice.
type Route struct {
	Cities        []int
	UsedCapacity  int
	TotalDistance int64

	catalog *Catalog
	dist    Distances
}

func NewRoute(catalog *Catalog, dist Distances, cities ...int) *Route {
	r := &Route{
		Cities:  append([]int(nil), cities...),
		catalog: catalog,
		dist:    dist,
	}
	for _, c := range r.Cities {
		r.UsedCapacity += catalog.Demand(c)
	}
	r.TotalDistance = r.FullCost()
	return r
}

// City at position i, with the depot standing in on both sides of the sequence.
func (r *Route) at(i int) int {
	if i < 0 || i >= len(r.Cities) {
		return 0
	}
	return r.Cities[i]
}

// Cost of edge k, the leg arriving at position k (k == len is the return leg).
func (r *Route) edge(k int) int64 {
	return r.dist.Get(r.at(k-1), r.at(k))
}

func (r *Route) indexOf(city int) int {
	return slices.Index(r.Cities, city)
}

// CanAccept reports whether city still fits under limit.
func (r *Route) CanAccept(city, limit int) bool {
	return r.UsedCapacity+r.catalog.Demand(city) <= limit
}

// Insert splices city in at position; positions past the end append.
func (r *Route) Insert(city, position int) {
	if position < 0 {
		position = 0
	}
	if position > len(r.Cities) {
		position = len(r.Cities)
	}

	before := r.at(position - 1)
	after := r.at(position)

	r.TotalDistance -= r.dist.Get(before, after)
	r.TotalDistance += r.dist.Get(before, city) + r.dist.Get(city, after)

	r.Cities = slices.Insert(r.Cities, position, city)
	r.UsedCapacity += r.catalog.Demand(city)
}

// Remove drops city from the route. It reports false when the city is not on it.
func (r *Route) Remove(city int) bool {
	i := r.indexOf(city)
	if i < 0 {
		return false
	}

	before := r.at(i - 1)
	after := r.at(i + 1)

	r.TotalDistance -= r.dist.Get(before, city) + r.dist.Get(city, after)
	r.TotalDistance += r.dist.Get(before, after)

	r.Cities = slices.Delete(r.Cities, i, i+1)
	r.UsedCapacity -= r.catalog.Demand(city)
	return true
}

// SwapOut replaces oldCity with newCity in place. It reports false when oldCity is not on the route.
func (r *Route) SwapOut(oldCity, newCity int) bool {
	i := r.indexOf(oldCity)
	if i < 0 {
		return false
	}

	before := r.at(i - 1)
	after := r.at(i + 1)

	r.TotalDistance -= r.dist.Get(before, oldCity) + r.dist.Get(oldCity, after)
	r.TotalDistance += r.dist.Get(before, newCity) + r.dist.Get(newCity, after)

	r.Cities[i] = newCity
	r.UsedCapacity += r.catalog.Demand(newCity) - r.catalog.Demand(oldCity)
	return true
}

// SwapPositions exchanges the cities at positions a and b.
func (r *Route) SwapPositions(a, b int) error {
	n := len(r.Cities)
	if a < 0 || a >= n || b < 0 || b >= n {
		return fmt.Errorf("swap positions: a=%d b=%d out of range for %d cities", a, b, n)
	}
	if a == b {
		return nil
	}

	// Edges touching position p are p (arriving) and p+1 (leaving). Adjacent
	// positions share one, so the set is deduplicated before either phase.
	edges := make([]int, 0, 4)
	for _, k := range []int{a, a + 1, b, b + 1} {
		if !slices.Contains(edges, k) {
			edges = append(edges, k)
		}
	}

	for _, k := range edges {
		r.TotalDistance -= r.edge(k)
	}

	r.Cities[a], r.Cities[b] = r.Cities[b], r.Cities[a]

	for _, k := range edges {
		r.TotalDistance += r.edge(k)
	}

	return nil
}

// FullCost recomputes the closed loop cost from scratch without touching the ledger.
func (r *Route) FullCost() int64 {
	var total int64
	for k := 0; k <= len(r.Cities); k++ {
		if len(r.Cities) == 0 {
			break
		}
		total += r.edge(k)
	}
	return total
}

// Recompute resets the ledger from a full recomputation and returns the new total.
func (r *Route) Recompute() int64 {
	r.TotalDistance = r.FullCost()
	used := 0
	for _, c := range r.Cities {
		used += r.catalog.Demand(c)
	}
	r.UsedCapacity = used
	return r.TotalDistance
}

func (r *Route) Clone() *Route {
	cp := *r
	cp.Cities = append([]int(nil), r.Cities...)
	return &cp
}

func (r *Route) String() string {
	parts := make([]string, len(r.Cities))
	for i, c := range r.Cities {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " ")
}
