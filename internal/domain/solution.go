package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Represents one complete candidate answer.
// Genes is a permutation of the customer ids; trip boundaries are not stored
// and are derived on demand by SplitTrips. Score and Hash are pure functions of
// the genes and must be recomputed whenever the genes change.
type Solution struct {
	Genes []int
	Score int64
	Hash  uint64
}

func (s Solution) Clone() Solution {
	genes := make([]int, len(s.Genes))
	copy(genes, s.Genes)
	return Solution{Genes: genes, Score: s.Score, Hash: s.Hash}
}

// SplitTrips cuts genes into depot-to-depot trips with the greedy left-to-right
// capacity-break rule: a gene joins the open trip if it fits, otherwise it
// opens a new one.
func SplitTrips(genes []int, capacity int, catalog *Catalog) [][]int {
	if len(genes) == 0 {
		return [][]int{}
	}

	trips := make([][]int, 0, 4)
	current := make([]int, 0, 8)
	load := 0
	for _, g := range genes {
		d := catalog.Demand(g)
		if load+d > capacity && len(current) > 0 {
			trips = append(trips, current)
			current = make([]int, 0, 8)
			load = 0
		}
		current = append(current, g)
		load += d
	}
	trips = append(trips, current)

	return trips
}

// Render formats trips as customers separated by a space inside a trip and
// trips separated by a semicolon, e.g. "1 2 3;4".
func Render(trips [][]int) string {
	var b strings.Builder
	for i, trip := range trips {
		if i > 0 {
			b.WriteByte(';')
		}
		for j, city := range trip {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(city))
		}
	}
	return b.String()
}

// ValidatePermutation checks that genes holds every customer id in [1, cityCount) exactly once.
func ValidatePermutation(genes []int, cityCount int) error {
	customers := cityCount - 1
	if customers < 0 {
		customers = 0
	}
	if len(genes) != customers {
		return fmt.Errorf("validate permutation: len=%d want %d: %w", len(genes), customers, ErrInvalidPermutation)
	}

	seen := make([]bool, cityCount)
	for i, g := range genes {
		if g <= 0 || g >= cityCount {
			return fmt.Errorf("validate permutation: gene %d at position %d out of range: %w", g, i, ErrInvalidPermutation)
		}
		if seen[g] {
			return fmt.Errorf("validate permutation: duplicate gene %d at position %d: %w", g, i, ErrInvalidPermutation)
		}
		seen[g] = true
	}

	return nil
}
