// Package db persists deck run history in SQLite.
//
// repository.go provides the CRUD surface for run records.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Run status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed" // Deck packaged; may still carry holes
	StatusFailed    = "failed"
)

// RunRecord is one deck generation run in the runs table.
type RunRecord struct {
	ID             int64      // Auto-incremented primary key
	RunID          string     // Run identifier, also the run directory name
	Idea           string     // Resolved idea text the run started from
	PageCount      int        // Pages in the flattened outline
	DescribedCount int        // Pages that got a description
	RenderedCount  int        // Pages that produced an artifact
	FailedIndices  []int      // Page indices recorded as holes
	Status         string     // StatusRunning, StatusCompleted or StatusFailed
	OutputPath     string     // Final deck path; empty until packaged
	ErrorMessage   string     // Failure cause for failed runs
	CreatedAt      time.Time  // When the run started
	CompletedAt    *time.Time // When the run finished; nil while running
}

// RunRepository provides CRUD operations for run records.
type RunRepository struct {
	db *Database
}

// NewRunRepository creates a run repository.
func NewRunRepository(database *Database) *RunRepository {
	return &RunRepository{db: database}
}

// Insert records the start of a run and returns the row ID.
func (r *RunRepository) Insert(ctx context.Context, record RunRecord) (int64, error) {
	if r.db == nil || r.db.conn == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	failed, err := encodeIndices(record.FailedIndices)
	if err != nil {
		return 0, err
	}

	status := record.Status
	if status == "" {
		status = StatusRunning
	}

	query := `
		INSERT INTO runs (
			run_id, idea, page_count, described_count, rendered_count,
			failed_indices, status, output_path, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.conn.ExecContext(ctx, query,
		record.RunID,
		record.Idea,
		record.PageCount,
		record.DescribedCount,
		record.RenderedCount,
		failed,
		status,
		record.OutputPath,
		record.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted run ID: %w", err)
	}
	return id, nil
}

// Update overwrites the mutable fields of a run, keyed by run ID, and stamps
// the completion time for terminal statuses.
func (r *RunRepository) Update(ctx context.Context, record RunRecord) error {
	if r.db == nil || r.db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}

	failed, err := encodeIndices(record.FailedIndices)
	if err != nil {
		return err
	}

	query := `
		UPDATE runs SET
			page_count = ?, described_count = ?, rendered_count = ?,
			failed_indices = ?, status = ?, output_path = ?, error_message = ?,
			completed_at = CASE WHEN ? IN (?, ?) THEN CURRENT_TIMESTAMP ELSE completed_at END
		WHERE run_id = ?`

	result, err := r.db.conn.ExecContext(ctx, query,
		record.PageCount,
		record.DescribedCount,
		record.RenderedCount,
		failed,
		record.Status,
		record.OutputPath,
		record.ErrorMessage,
		record.Status, StatusCompleted, StatusFailed,
		record.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", record.RunID)
	}
	return nil
}

// GetByRunID fetches one run record.
func (r *RunRepository) GetByRunID(ctx context.Context, runID string) (*RunRecord, error) {
	if r.db == nil || r.db.conn == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := selectColumns + ` WHERE run_id = ?`
	record, err := scanRun(r.db.conn.QueryRowContext(ctx, query, runID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", runID)
		}
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return record, nil
}

// ListRecent returns the most recent runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	if r.db == nil || r.db.conn == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if limit < 1 {
		limit = 20
	}

	query := selectColumns + ` ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return records, nil
}

const selectColumns = `
	SELECT id, run_id, idea, page_count, described_count, rendered_count,
	       failed_indices, status, output_path, error_message,
	       created_at, completed_at
	FROM runs`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var record RunRecord
	var failed string
	var completedAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.RunID,
		&record.Idea,
		&record.PageCount,
		&record.DescribedCount,
		&record.RenderedCount,
		&failed,
		&record.Status,
		&record.OutputPath,
		&record.ErrorMessage,
		&record.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(failed), &record.FailedIndices); err != nil {
		return nil, fmt.Errorf("failed to decode failed indices %q: %w", failed, err)
	}
	if completedAt.Valid {
		record.CompletedAt = &completedAt.Time
	}
	return &record, nil
}

func encodeIndices(indices []int) (string, error) {
	if indices == nil {
		indices = []int{}
	}
	data, err := json.Marshal(indices)
	if err != nil {
		return "", fmt.Errorf("failed to encode failed indices: %w", err)
	}
	return string(data), nil
}
