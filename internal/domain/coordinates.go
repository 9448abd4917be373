package domain

import "math"

// Immutable planar coordinates on the integer grid.
type Point struct {
	X int
	Y int
}

// Return the Euclidean distance to q rounded to the nearest integer.
func (p Point) RoundedDistance(q Point) int64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return int64(math.Round(math.Sqrt(dx*dx + dy*dy)))
}
