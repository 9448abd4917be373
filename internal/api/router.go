package api

import (
	"cvrp-route-service/internal/api/handlers"
	"cvrp-route-service/internal/metrics"
	"cvrp-route-service/internal/platform/sysinfo"
	"cvrp-route-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RouterConfig carries the dependencies of the HTTP surface.
type RouterConfig struct {
	Solver   *services.RouteSolver
	Defaults services.Options
	Host     sysinfo.Info
	// Optional throttle for /solve.
	Limiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Host: cfg.Host}
	solveHandler := &handlers.SolveHandler{
		Solver:   cfg.Solver,
		Defaults: cfg.Defaults,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/solve", rateLimitMiddleware(cfg.Limiter, http.HandlerFunc(solveHandler.Solve)))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
