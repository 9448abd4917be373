package main

import (
	"context"
	"cvrp-route-service/internal/adapters/cache"
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/api"
	"cvrp-route-service/internal/config"
	"cvrp-route-service/internal/metrics"
	"cvrp-route-service/internal/platform/db"
	"cvrp-route-service/internal/platform/sysinfo"
	"cvrp-route-service/internal/ports"
	"cvrp-route-service/internal/services"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires the distance oracle and the optional solution cache behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	solverCfg, err := config.LoadSolverConfig(config.Get("SOLVER_CONFIG", ""))
	if err != nil {
		log.Fatal(err)
	}

	solutionCache, closeCache, err := openCache()
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	var limiter *rate.Limiter
	if rps := config.GetInt("SOLVE_RATE_PER_SEC", 0); rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), config.GetInt("SOLVE_BURST", rps))
	}

	host := sysinfo.Collect()
	log.Printf("host %s", host)

	metrics.RegisterDefault()
	router := api.NewRouter(api.RouterConfig{
		Solver:   services.NewRouteSolver(distance.EuclideanFactory{}, solutionCache),
		Defaults: solverCfg.Options(),
		Host:     host,
		Limiter:  limiter,
	})

	// Write timeout leaves room for the largest per-request budget.
	log.Printf("Server listening addr=:%s budget=%s", port, solverCfg.Options().Budget)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openCache prefers Redis, then Postgres, and runs without a cache when neither is configured.
func openCache() (ports.SolutionCache, func(), error) {
	if url := config.Get("REDIS_URL", ""); url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := cache.OpenRedis(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		ttl := config.GetDuration("CACHE_TTL", 7*24*time.Hour)
		log.Printf("solution cache backend=redis ttl=%s", ttl)
		return cache.NewRedisSolutionCache(client, ttl), func() { _ = client.Close() }, nil
	}

	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(url)
		if err != nil {
			return nil, nil, err
		}
		log.Println("solution cache backend=postgres")
		return cache.NewSQLSolutionCache(conn), func() { _ = conn.Close() }, nil
	}

	log.Println("solution cache disabled (set REDIS_URL or DATABASE_URL)")
	return nil, func() {}, nil
}
