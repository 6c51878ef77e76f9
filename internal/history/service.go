// Package history records lint runs in Postgres so results can be
// compared across pushes to the same pull request.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Run is one recorded lint run for a pull request.
type Run struct {
	ID           string
	PRNumber     string
	CommitSHA    string
	RunID        string
	ErrorCount   int
	WarningCount int
	Failed       bool
	CreatedAt    time.Time
}

// Service provides run history backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new history Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Open connects to Postgres and applies pending migrations.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RecordRun inserts a run record and returns the stored row.
func (s *Service) RecordRun(ctx context.Context, run Run) (*Run, error) {
	r := &Run{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO lint_runs (pr_number, commit_sha, run_id, error_count, warning_count, failed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, pr_number, commit_sha, run_id, error_count, warning_count, failed, created_at`,
		run.PRNumber, run.CommitSHA, run.RunID, run.ErrorCount, run.WarningCount, run.Failed,
	).Scan(&r.ID, &r.PRNumber, &r.CommitSHA, &r.RunID, &r.ErrorCount, &r.WarningCount, &r.Failed, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return r, nil
}

// ListRunsByPR returns runs for a pull request, newest first.
func (s *Service) ListRunsByPR(ctx context.Context, prNumber string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pr_number, commit_sha, run_id, error_count, warning_count, failed, created_at
		 FROM lint_runs WHERE pr_number = $1
		 ORDER BY created_at DESC LIMIT $2`,
		prNumber, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs for PR %s: %w", prNumber, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.PRNumber, &r.CommitSHA, &r.RunID, &r.ErrorCount, &r.WarningCount, &r.Failed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
