package main

import (
	"context"
	"cvrp-route-service/internal/adapters/cache"
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/adapters/repositories"
	"cvrp-route-service/internal/config"
	"cvrp-route-service/internal/platform/obs"
	"cvrp-route-service/internal/platform/sysinfo"
	"cvrp-route-service/internal/ports"
	"cvrp-route-service/internal/services"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

func main() {
	// stdout carries the answer only.
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "cvrp"
	app.Usage = "solve a capacitated vehicle routing instance read from stdin"
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input, i", Usage: "read a JSON instance file instead of stdin"},
		cli.StringFlag{Name: "config, c", Usage: "solver YAML config", EnvVar: "SOLVER_CONFIG"},
		cli.DurationFlag{Name: "budget, b", Usage: "override the genetic time budget"},
		cli.Int64Flag{Name: "seed, s", Usage: "override the random seed"},
		cli.IntFlag{Name: "workers, w", Usage: "override the number of scoring goroutines"},
		cli.BoolFlag{Name: "local-search", Usage: "polish the result with route local search"},
		cli.StringFlag{Name: "redis", Usage: "redis URL of a shared solution cache", EnvVar: "REDIS_URL"},
		cli.BoolFlag{Name: "report", Usage: "print a solve report and host details on stderr"},
		cli.StringFlag{Name: "export", Usage: "also write the loaded instance to this JSON file"},
	}
	app.Action = func(c *cli.Context) error {
		return run(c, stdin, stdout)
	}
	return app
}

func run(c *cli.Context, stdin io.Reader, stdout io.Writer) (err error) {
	ctx := obs.WithRequestID(context.Background(), "")
	defer obs.Time(ctx, "cvrp")(&err)

	solverCfg, err := config.LoadSolverConfig(c.String("config"))
	if err != nil {
		return err
	}
	opts := solverCfg.Options()
	if c.IsSet("budget") {
		opts.Budget = c.Duration("budget")
	}
	if c.IsSet("seed") {
		opts.Seed = c.Int64("seed")
	}
	if c.IsSet("workers") {
		opts.Workers = c.Int("workers")
	}
	if c.Bool("local-search") {
		opts.LocalSearch = true
	}

	var (
		source  ports.InstanceSource = repositories.NewTextInstanceReader(stdin)
		oracles ports.OracleFactory  = distance.EuclideanFactory{}
	)
	jsonFile := repositories.NewJSONInstanceFile(c.String("input"))
	if jsonFile.Path != "" {
		source = jsonFile
	}
	inst, err := source.LoadInstance(ctx)
	if err != nil {
		return err
	}

	// Cache keys cover coordinates only, so explicit costs bypass the cache.
	if costs := jsonFile.Costs(); len(costs) > 0 {
		oracles = distance.FixedFactory{Pairs: fixedPairs(costs)}
		opts.UseCache = false
	}

	if path := c.String("export"); path != "" {
		if err := repositories.SaveInstanceJSON(path, inst); err != nil {
			return err
		}
	}

	var solutionCache ports.SolutionCache
	if url := c.String("redis"); url != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		client, err := cache.OpenRedis(pingCtx, url)
		cancel()
		if err != nil {
			return err
		}
		defer client.Close()
		solutionCache = cache.NewRedisSolutionCache(client, config.GetDuration("CACHE_TTL", 7*24*time.Hour))
	}

	solver := services.NewRouteSolver(oracles, solutionCache)
	res, err := solver.Solve(ctx, services.SolveRequest{Instance: inst, Options: opts})
	if err != nil {
		return err
	}

	if c.Bool("report") {
		log.Printf("req_id=%s strategy=%s generations=%d score=%d trips=%d cached=%t elapsed=%dms",
			obs.RequestID(ctx), res.Strategy, res.Generations, res.Solution.Score, len(res.Trips), res.Cached, res.Elapsed.Milliseconds())
		log.Printf("req_id=%s host %s", obs.RequestID(ctx), sysinfo.Collect())
	}

	if _, err := fmt.Fprintln(stdout, res.Rendered); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, res.Solution.Score)
	return err
}

func fixedPairs(costs []repositories.CostSeed) []distance.FixedPair {
	pairs := make([]distance.FixedPair, len(costs))
	for i, c := range costs {
		pairs[i] = distance.FixedPair{From: c.From, To: c.To, Cost: c.Cost}
	}
	return pairs
}
