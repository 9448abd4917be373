package services

import (
	"cvrp-route-service/internal/domain"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// hashGenes is the structural hash used by the visited set. Collisions only
// cost a missed candidate.
func hashGenes(genes []int) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, g := range genes {
		binary.LittleEndian.PutUint64(buf[:], uint64(g))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// SolveKey fingerprints an instance together with every option that can
// change the answer, so a cached entry only ever stands in for a run that
// would have been configured the same way. Exact runs ignore the seed and the
// genetic options.
func SolveKey(inst domain.Instance, opts Options) string {
	d := xxhash.New()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}

	put(int64(inst.Capacity))
	put(int64(len(inst.Cities)))
	for _, c := range inst.Cities {
		put(int64(c.ID))
		put(int64(c.X))
		put(int64(c.Y))
		put(int64(c.Demand))
	}

	if opts.LocalSearch {
		put(1)
	} else {
		put(0)
	}

	strategy := StrategyExact
	if len(inst.Cities)-1 >= opts.ExactThreshold {
		strategy = StrategyGenetic
		seed := opts.Seed
		if seed == 0 {
			seed = defaultSeed
		}
		put(seed)
		put(int64(opts.Budget))
		put(int64(opts.PopulationSize))
		put(int64(opts.Survivors))
		put(int64(math.Float64bits(opts.MutationRate)))
		put(int64(opts.MaxGenerations))
		put(int64(opts.Workers))
	}

	return "cvrp:solution:" + strategy + ":" + strconv.FormatUint(d.Sum64(), 16)
}
