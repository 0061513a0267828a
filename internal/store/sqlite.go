package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	runs *sqliteRunRepo
}

// NewSQLiteStore creates a new SQLite store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if !strings.Contains(dsn, ":memory:") {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	store := &SQLiteStore{db: db}
	store.runs = &sqliteRunRepo{db: db}

	return store, nil
}

// Runs returns the solve-run repository.
func (s *SQLiteStore) Runs() RunRepository {
	return s.runs
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	upSQL, err := migrationsFS.ReadFile("migrations/001_initial.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read migration: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// sqliteRunRepo implements RunRepository for SQLite.
type sqliteRunRepo struct {
	db *sql.DB
}

func (r *sqliteRunRepo) Store(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var resultPayload []byte
	if run.Result != nil {
		var err error
		resultPayload, err = json.Marshal(run.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO solve_runs (id, grid_digest, dict_digest, rng_seed, outcome, result, recursive_calls, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			grid_digest = excluded.grid_digest,
			dict_digest = excluded.dict_digest,
			rng_seed = excluded.rng_seed,
			outcome = excluded.outcome,
			result = excluded.result,
			recursive_calls = excluded.recursive_calls,
			error_message = excluded.error_message
	`, run.ID, run.GridDigest, run.DictDigest, run.RNGSeed, run.Outcome, resultPayload,
		run.Stats.RecursiveCalls, run.ErrorMessage, run.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}

	return nil
}

func (r *sqliteRunRepo) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	var resultPayload []byte
	var recursiveCalls uint64

	err := r.db.QueryRowContext(ctx, `
		SELECT id, grid_digest, dict_digest, rng_seed, outcome, result, recursive_calls, error_message, created_at
		FROM solve_runs WHERE id = ?
	`, id).Scan(&run.ID, &run.GridDigest, &run.DictDigest, &run.RNGSeed, &run.Outcome,
		&resultPayload, &recursiveCalls, &run.ErrorMessage, &run.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Stats.RecursiveCalls = recursiveCalls

	if len(resultPayload) > 0 {
		if err := json.Unmarshal(resultPayload, &run.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	return &run, nil
}

func (r *sqliteRunRepo) List(ctx context.Context, filter RunFilter) ([]*RunSummary, error) {
	query := `SELECT id, grid_digest, dict_digest, outcome, recursive_calls, created_at FROM solve_runs WHERE 1=1`
	args := []interface{}{}

	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filter.Outcome)
	}
	if filter.FromDate != "" {
		query += " AND created_at >= ?"
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		query += " AND created_at <= ?"
		args = append(args, filter.ToDate)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.GridDigest, &s.DictDigest, &s.Outcome, &s.RecursiveCalls, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &s)
	}

	return runs, rows.Err()
}

func (r *sqliteRunRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM solve_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
