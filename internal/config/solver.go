package config

import (
	"cvrp-route-service/internal/services"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SolverConfig is the file form of the solver options.
type SolverConfig struct {
	Budget         Duration `yaml:"budget"`
	Seed           int64    `yaml:"seed"`
	PopulationSize int      `yaml:"population_size"`
	Survivors      int      `yaml:"survivors"`
	MutationRate   float64  `yaml:"mutation_rate"`
	ExactThreshold int      `yaml:"exact_threshold"`
	MaxGenerations int      `yaml:"max_generations"`
	Workers        int      `yaml:"workers"`
	LocalSearch    bool     `yaml:"local_search"`
	UseCache       bool     `yaml:"use_cache"`
}

// Duration accepts "9.5s" style strings in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) { return time.Duration(d).String(), nil }

func DefaultSolverConfig() SolverConfig {
	o := services.DefaultOptions()
	return SolverConfig{
		Budget:         Duration(o.Budget),
		Seed:           o.Seed,
		PopulationSize: o.PopulationSize,
		Survivors:      o.Survivors,
		MutationRate:   o.MutationRate,
		ExactThreshold: o.ExactThreshold,
		MaxGenerations: o.MaxGenerations,
		Workers:        o.Workers,
		LocalSearch:    o.LocalSearch,
		UseCache:       o.UseCache,
	}
}

// LoadSolverConfig layers defaults, the optional YAML file at path and
// CVRP_* environment overrides, then validates the result.
func LoadSolverConfig(path string) (SolverConfig, error) {
	cfg := DefaultSolverConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return SolverConfig{}, fmt.Errorf("load solver config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return SolverConfig{}, fmt.Errorf("load solver config: parse %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return SolverConfig{}, fmt.Errorf("load solver config: %w", err)
	}
	if err := cfg.Options().Validate(); err != nil {
		return SolverConfig{}, fmt.Errorf("load solver config: %w", err)
	}

	return cfg, nil
}

func (c *SolverConfig) applyEnv() error {
	var errs []error

	if v := Get("CVRP_BUDGET", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CVRP_BUDGET: %w", err))
		}
		c.Budget = Duration(d)
	}
	if v := Get("CVRP_SEED", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("CVRP_SEED: %w", err))
		}
		c.Seed = n
	}
	if v := Get("CVRP_MUTATION_RATE", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("CVRP_MUTATION_RATE: %w", err))
		}
		c.MutationRate = f
	}
	if v := Get("CVRP_LOCAL_SEARCH", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CVRP_LOCAL_SEARCH: %w", err))
		}
		c.LocalSearch = b
	}

	c.PopulationSize = GetInt("CVRP_POPULATION_SIZE", c.PopulationSize)
	c.Survivors = GetInt("CVRP_SURVIVORS", c.Survivors)
	c.ExactThreshold = GetInt("CVRP_EXACT_THRESHOLD", c.ExactThreshold)
	c.MaxGenerations = GetInt("CVRP_MAX_GENERATIONS", c.MaxGenerations)
	c.Workers = GetInt("CVRP_WORKERS", c.Workers)

	return errors.Join(errs...)
}

// Options converts the file form into solver options.
func (c SolverConfig) Options() services.Options {
	return services.Options{
		Budget:         time.Duration(c.Budget),
		Seed:           c.Seed,
		PopulationSize: c.PopulationSize,
		Survivors:      c.Survivors,
		MutationRate:   c.MutationRate,
		ExactThreshold: c.ExactThreshold,
		MaxGenerations: c.MaxGenerations,
		Workers:        c.Workers,
		LocalSearch:    c.LocalSearch,
		UseCache:       c.UseCache,
	}
}
