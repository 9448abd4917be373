package handlers

import (
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/services"
	"errors"
	"log"
	"net/http"
	"time"
)

const (
	maxCities   = 2000
	maxBudgetMS = 60_000
	maxBodySize = 1 << 20

	maxPopulation = 20_000
	maxWorkers    = 64
)

type SolveHandler struct {
	Solver   *services.RouteSolver
	Defaults services.Options
}

// Solve decodes an instance, applies per-request option overrides on top of
// the server defaults and runs the solver.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest
	if err := decodeStrict(w, r, maxBodySize, &req); err != nil {
		if errors.Is(err, errTrailingData) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Capacity < 1 {
		writeError(w, r, http.StatusBadRequest, "capacity must be positive")
		return
	}
	if len(req.Cities) == 0 || len(req.Cities) > maxCities {
		writeError(w, r, http.StatusBadRequest, "cities must hold between 1 and 2000 records, depot first")
		return
	}

	opts, msg := h.options(req.Options)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	inst := domain.Instance{Capacity: req.Capacity, Cities: make([]domain.City, 0, len(req.Cities))}
	for _, c := range req.Cities {
		inst.Cities = append(inst.Cities, domain.City{ID: c.ID, X: c.X, Y: c.Y, Demand: c.Demand})
	}

	res, err := h.Solver.Solve(r.Context(), services.SolveRequest{Instance: inst, Options: opts})
	if err != nil {
		if services.IsInputError(err) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("req_id=%s solve failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	catalog := inst.Catalog()
	trips := make([]dto.TripResponse, 0, len(res.Trips))
	for _, trip := range res.Trips {
		load := 0
		for _, c := range trip {
			load += catalog.Demand(c)
		}
		trips = append(trips, dto.TripResponse{Customers: trip, Load: load})
	}

	writeJSON(w, r, http.StatusOK, dto.SolveResponse{
		RequestID:   obs.RequestID(r.Context()),
		Route:       res.Rendered,
		Score:       res.Solution.Score,
		Genes:       res.Solution.Genes,
		Trips:       trips,
		Strategy:    res.Strategy,
		Generations: res.Generations,
		ElapsedMS:   res.Elapsed.Milliseconds(),
		Cached:      res.Cached,
	})
}

// options overlays the request fields on the defaults. A non-empty message
// means the request was out of range.
func (h *SolveHandler) options(req *dto.SolveOptionsRequest) (services.Options, string) {
	opts := h.Defaults
	if req == nil {
		return opts, ""
	}

	if req.BudgetMS != nil {
		if *req.BudgetMS < 1 || *req.BudgetMS > maxBudgetMS {
			return opts, "budget_ms must be between 1 and 60000"
		}
		opts.Budget = time.Duration(*req.BudgetMS) * time.Millisecond
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}
	if req.PopulationSize != nil {
		if *req.PopulationSize > maxPopulation {
			return opts, "population_size must not exceed 20000"
		}
		opts.PopulationSize = *req.PopulationSize
	}
	if req.Survivors != nil {
		opts.Survivors = *req.Survivors
	}
	if req.MutationRate != nil {
		opts.MutationRate = *req.MutationRate
	}
	if req.MaxGenerations != nil {
		opts.MaxGenerations = *req.MaxGenerations
	}
	if req.Workers != nil {
		if *req.Workers > maxWorkers {
			return opts, "workers must not exceed 64"
		}
		opts.Workers = *req.Workers
	}
	if req.LocalSearch != nil {
		opts.LocalSearch = *req.LocalSearch
	}
	if req.UseCache != nil {
		opts.UseCache = *req.UseCache
	}

	if err := opts.Validate(); err != nil {
		return opts, err.Error()
	}

	return opts, ""
}
