package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
	// HTTPThrottled counts requests rejected by the rate limiter
	HTTPThrottled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_throttled_total", Help: "Requests rejected by the rate limiter."},
		[]string{"path"},
	)

	// Solves counts finished solves by strategy and outcome
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cvrp_solves_total", Help: "Finished solves by strategy and outcome."},
		[]string{"strategy", "outcome"},
	)
	// SolveDuration records wall-clock solve time in seconds
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "cvrp_solve_duration_seconds", Help: "Solve duration in seconds.", Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30}},
		[]string{"strategy"},
	)
	// Generations records how many GA generations a solve completed
	Generations = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "cvrp_ga_generations", Help: "Generations completed per genetic solve.", Buckets: prometheus.ExponentialBuckets(1, 4, 10)},
	)
	// Candidates counts candidates admitted into a population by origin
	Candidates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cvrp_ga_candidates_total", Help: "Candidates admitted into the population by origin."},
		[]string{"origin"},
	)
	// Duplicates counts candidates rejected because their hash was already visited
	Duplicates = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cvrp_ga_duplicates_total", Help: "Candidates rejected as already visited."},
	)
	// BestScore tracks the score of the last finished solve
	BestScore = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "cvrp_best_score", Help: "Score of the last finished solve."},
	)
	// CacheLookups counts solution cache lookups by result
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cvrp_cache_lookups_total", Help: "Solution cache lookups by result."},
		[]string{"result"},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(HTTPThrottled)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(Generations)
		Registry.MustRegister(Candidates)
		Registry.MustRegister(Duplicates)
		Registry.MustRegister(BestScore)
		Registry.MustRegister(CacheLookups)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
