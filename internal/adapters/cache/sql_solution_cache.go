package cache

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SQLSolutionCache is a Postgres-backed store of the best known solution per instance key.
type SQLSolutionCache struct {
	DB *sql.DB
}

func NewSQLSolutionCache(db *sql.DB) *SQLSolutionCache {
	return &SQLSolutionCache{DB: db}
}

// Fetch the cached solution for one instance key.
func (s *SQLSolutionCache) Get(ctx context.Context, key string) (_ domain.Solution, _ bool, err error) {
	defer obs.Time(ctx, "solution.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.Solution{}, false, errors.New("solution cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return domain.Solution{}, false, errors.New("get solution cache: key must not be empty")
	}

	q := `
	SELECT genes, score
	FROM solution_cache
	WHERE instance_key = $1;
	`

	var raw []byte
	var score int64
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&raw, &score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Solution{}, false, nil
		}
		return domain.Solution{}, false, fmt.Errorf("get solution cache: query solution_cache table: %w", err)
	}

	var genes []int
	if err := json.Unmarshal(raw, &genes); err != nil {
		return domain.Solution{}, false, fmt.Errorf("get solution cache: decode genes: %w", err)
	}

	return domain.Solution{Genes: genes, Score: score}, true, nil
}

// Store a solution, keeping the existing row when it already scores at least as well.
func (s *SQLSolutionCache) Put(ctx context.Context, key string, sol domain.Solution) (err error) {
	defer obs.Time(ctx, "solution.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("solution cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert solution cache: key must not be empty")
	}

	genes, err := json.Marshal(sol.Genes)
	if err != nil {
		return fmt.Errorf("insert solution cache: encode genes: %w", err)
	}

	q := `
	INSERT INTO solution_cache (instance_key, genes, score, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (instance_key) DO UPDATE
	SET genes = EXCLUDED.genes,
		score = EXCLUDED.score,
		updated_at = EXCLUDED.updated_at
	WHERE solution_cache.score > EXCLUDED.score;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, string(genes), sol.Score); err != nil {
		return fmt.Errorf("insert solution cache key=%q: %w", key, err)
	}

	return nil
}
