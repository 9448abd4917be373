package ports

// Optional extension of DistanceOracle that exposes a whole row for scans.
type DistanceRowOracle interface {
	DistanceOracle
	// Return the costs from city i to every city. Callers must not modify it.
	Row(i int) []int64
}
