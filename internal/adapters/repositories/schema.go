package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema backing the solution cache.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSolutionCacheQuery := `
	CREATE TABLE IF NOT EXISTS solution_cache (
		instance_key TEXT PRIMARY KEY,
		genes JSONB NOT NULL,
		score BIGINT NOT NULL CHECK (score >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solution_cache_updated_at
	ON solution_cache(updated_at);
	`

	statements := []string{
		createSolutionCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Delete cache rows not refreshed since the given interval, e.g. '30 days'.
func PruneSolutionCache(db *sql.DB, olderThan string) (int64, error) {
	if db == nil {
		return 0, errors.New("prune solution cache: DB is nil")
	}

	res, err := db.Exec(`DELETE FROM solution_cache WHERE updated_at < NOW() - $1::interval;`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune solution cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune solution cache: rows affected: %w", err)
	}
	return n, nil
}
