package dto

import "cvrp-route-service/internal/platform/sysinfo"

type CityRequest struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Demand int `json:"demand"`
}

type SolveOptionsRequest struct {
	BudgetMS       *int     `json:"budget_ms"`
	Seed           *int64   `json:"seed"`
	PopulationSize *int     `json:"population_size"`
	Survivors      *int     `json:"survivors"`
	MutationRate   *float64 `json:"mutation_rate"`
	MaxGenerations *int     `json:"max_generations"`
	Workers        *int     `json:"workers"`
	LocalSearch    *bool    `json:"local_search"`
	UseCache       *bool    `json:"use_cache"`
}

type SolveRequest struct {
	Capacity int                  `json:"capacity"`
	Cities   []CityRequest        `json:"cities"`
	Options  *SolveOptionsRequest `json:"options"`
}

type TripResponse struct {
	Customers []int `json:"customers"`
	Load      int   `json:"load"`
}

type SolveResponse struct {
	RequestID   string         `json:"request_id"`
	Route       string         `json:"route"`
	Score       int64          `json:"score"`
	Genes       []int          `json:"genes"`
	Trips       []TripResponse `json:"trips"`
	Strategy    string         `json:"strategy"`
	Generations int            `json:"generations"`
	ElapsedMS   int64          `json:"elapsed_ms"`
	Cached      bool           `json:"cached"`
}

type HealthResponse struct {
	Status string       `json:"status"`
	Host   sysinfo.Info `json:"host"`
}
