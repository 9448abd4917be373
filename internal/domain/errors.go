package domain

import "errors"

var (
	// ErrInfeasibleDemand is returned when a customer demands more than a vehicle can carry.
	ErrInfeasibleDemand = errors.New("customer demand exceeds vehicle capacity")

	// ErrScoreOverflow is returned when an instance could accumulate a score beyond int64.
	ErrScoreOverflow = errors.New("score may overflow int64")

	// ErrInvalidPermutation is returned when a gene sequence is not a permutation of the customers.
	ErrInvalidPermutation = errors.New("genes are not a permutation of the customers")

	// ErrInvalidInstance is returned for malformed instance data (ids, capacity, depot).
	ErrInvalidInstance = errors.New("invalid instance")
)
