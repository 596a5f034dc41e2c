package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"multihost/internal/repository"
)

// Repository implements repository.RunRepository using SQLite.
type Repository struct {
	db *sql.DB
}

// New opens (creating if necessary) the run-history database at dbPath.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started DATETIME NOT NULL,
		finished DATETIME NOT NULL,
		passed INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		errors INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS invocations (
		run_id TEXT NOT NULL,
		invocation TEXT NOT NULL,
		test TEXT NOT NULL,
		mark TEXT,
		param TEXT,
		outcome TEXT NOT NULL,
		skip_reason TEXT,
		failure TEXT,
		rollback_errors JSON,
		duration_ns INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, invocation),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_run ON invocations(run_id);
	CREATE INDEX IF NOT EXISTS idx_invocations_test ON invocations(test);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveRun inserts or replaces a run summary.
func (r *Repository) SaveRun(ctx context.Context, run *repository.RunRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, started, finished, passed, failed, errors, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished = excluded.finished,
			passed = excluded.passed,
			failed = excluded.failed,
			errors = excluded.errors,
			skipped = excluded.skipped`,
		run.ID, run.Started.UTC(), run.Finished.UTC(),
		run.Passed, run.Failed, run.Errors, run.Skipped)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// SaveInvocation inserts or replaces one invocation outcome.
func (r *Repository) SaveInvocation(ctx context.Context, inv *repository.InvocationRecord) error {
	rollback, err := json.Marshal(inv.RollbackErrs)
	if err != nil {
		return fmt.Errorf("marshal rollback errors: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO invocations
			(run_id, invocation, test, mark, param, outcome, skip_reason, failure, rollback_errors, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.RunID, inv.Invocation, inv.Test, inv.Mark, inv.Param,
		inv.Outcome, inv.SkipReason, inv.Failure, string(rollback), int64(inv.Duration))
	if err != nil {
		return fmt.Errorf("save invocation %s: %w", inv.Invocation, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]repository.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, started, finished, passed, failed, errors, skipped
		FROM runs ORDER BY started DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []repository.RunRecord
	for rows.Next() {
		var run repository.RunRecord
		var started, finished time.Time
		if err := rows.Scan(&run.ID, &started, &finished,
			&run.Passed, &run.Failed, &run.Errors, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started = started
		run.Finished = finished
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListInvocations returns the invocation outcomes of one run in insertion
// order.
func (r *Repository) ListInvocations(ctx context.Context, runID string) ([]repository.InvocationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT run_id, invocation, test, mark, param, outcome, skip_reason, failure, rollback_errors, duration_ns
		FROM invocations WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	defer rows.Close()

	var invs []repository.InvocationRecord
	for rows.Next() {
		var inv repository.InvocationRecord
		var rollback string
		var durationNS int64
		if err := rows.Scan(&inv.RunID, &inv.Invocation, &inv.Test, &inv.Mark, &inv.Param,
			&inv.Outcome, &inv.SkipReason, &inv.Failure, &rollback, &durationNS); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		inv.Duration = time.Duration(durationNS)
		if rollback != "" {
			if err := json.Unmarshal([]byte(rollback), &inv.RollbackErrs); err != nil {
				return nil, fmt.Errorf("unmarshal rollback errors: %w", err)
			}
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}
