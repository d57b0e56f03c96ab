package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/orderpack/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

// Store is a SQLite-backed history database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.orderpack/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".orderpack", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save inserts or replaces a run and its failures in one transaction.
func (s *runStore) Save(ctx context.Context, run *domain.RunRecord) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("saving run: %w", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, status, rate_limited, max_parallel, inter_batch_delay_ms,
			total, succeeded, failed, archive_path, archive_bytes, error, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			status = excluded.status,
			rate_limited = excluded.rate_limited,
			max_parallel = excluded.max_parallel,
			inter_batch_delay_ms = excluded.inter_batch_delay_ms,
			total = excluded.total,
			succeeded = excluded.succeeded,
			failed = excluded.failed,
			archive_path = excluded.archive_path,
			archive_bytes = excluded.archive_bytes,
			error = excluded.error,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at
	`, run.ID, run.Label, run.Status.String(), boolToInt(run.Policy.RateLimited),
		run.Policy.MaxParallel, run.Policy.InterBatchDelayMs,
		run.Total, run.Succeeded, run.Failed,
		nullString(run.ArchivePath), run.ArchiveBytes, nullString(run.Error),
		run.StartedAt.UTC(), nullTime(run.EndedAt))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_failures WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing run failures: %w", err)
	}
	for i, f := range run.Failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_failures (run_id, position, locator, reason) VALUES (?, ?, ?, ?)",
			run.ID, i, f.Locator, f.Reason); err != nil {
			return fmt.Errorf("saving run failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := s.store.db.QueryRowContext(ctx, selectRun+" WHERE id = ?", id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	failures, err := s.failures(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Failures = failures
	return run, nil
}

// List returns runs newest first. limit <= 0 returns all runs.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	query := selectRun + " ORDER BY started_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		failures, err := s.failures(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Failures = failures
	}
	return runs, nil
}

func (s *runStore) failures(ctx context.Context, runID string) ([]domain.FailureRecord, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT locator, reason FROM run_failures WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("listing run failures: %w", err)
	}
	defer rows.Close()

	var failures []domain.FailureRecord
	for rows.Next() {
		var f domain.FailureRecord
		if err := rows.Scan(&f.Locator, &f.Reason); err != nil {
			return nil, fmt.Errorf("scanning run failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run failures: %w", err)
	}
	return failures, nil
}

// ==================== Helpers ====================

const selectRun = `
	SELECT id, label, status, rate_limited, max_parallel, inter_batch_delay_ms,
		total, succeeded, failed, archive_path, archive_bytes, error, started_at, ended_at
	FROM runs`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.RunRecord, error) {
	var run domain.RunRecord
	var status string
	var rateLimited int
	var archivePath, errText sql.NullString
	var startedAt, endedAt sql.NullTime

	if err := row.Scan(&run.ID, &run.Label, &status, &rateLimited,
		&run.Policy.MaxParallel, &run.Policy.InterBatchDelayMs,
		&run.Total, &run.Succeeded, &run.Failed,
		&archivePath, &run.ArchiveBytes, &errText, &startedAt, &endedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	run.Policy.RateLimited = rateLimited != 0
	run.ArchivePath = archivePath.String
	run.Error = errText.String
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if endedAt.Valid {
		run.EndedAt = endedAt.Time
	}
	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
