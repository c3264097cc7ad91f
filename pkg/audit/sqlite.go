package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Config contains configuration for the SQLite audit store.
type Config struct {
	// Path is the database file path.
	Path string

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default audit store configuration.
func DefaultConfig() Config {
	return Config{
		Path:        "data/audit.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	event_id TEXT NOT NULL,
	recorded_at INTEGER NOT NULL,
	day_key TEXT NOT NULL,
	reply INTEGER NOT NULL,
	priority TEXT NOT NULL,
	reason TEXT NOT NULL,
	mode TEXT NOT NULL,
	wait_seconds REAL NOT NULL,
	spent_usd REAL NOT NULL,
	calls_today INTEGER NOT NULL,
	cost_usd REAL NOT NULL,
	dry_run INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_event_id ON decisions(event_id);
CREATE INDEX IF NOT EXISTS idx_decisions_day_key ON decisions(day_key);
`

const insertQuery = `
INSERT INTO decisions (
	id, run_id, event_id, recorded_at, day_key,
	reply, priority, reason, mode, wait_seconds,
	spent_usd, calls_today, cost_usd, dry_run
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `
	id, run_id, event_id, recorded_at, day_key,
	reply, priority, reason, mode, wait_seconds,
	spent_usd, calls_today, cost_usd, dry_run`

// Store persists decision records to a SQLite database.
type Store struct {
	db         *sql.DB
	config     Config
	insertStmt *sql.Stmt
	logger     *slog.Logger
	closeOnce  sync.Once
}

// NewStore opens (or creates) the audit database at cfg.Path and
// initializes the schema.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("audit: database path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}

	// Single writer; the daemon appends from one goroutine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{
		db:     db,
		config: cfg,
		logger: slog.Default().With("component", "audit"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("audit store initialized", "path", cfg.Path, "wal_mode", cfg.WALMode)
	return s, nil
}

func (s *Store) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("audit: enable WAL: %w", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("audit: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("audit: create schema: %w", err)
	}
	stmt, err := s.db.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("audit: prepare insert: %w", err)
	}
	s.insertStmt = stmt
	return nil
}

// Append writes a decision record. A missing ID or RecordedAt is filled in.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}

	_, err := s.insertStmt.ExecContext(ctx,
		rec.ID, rec.RunID, rec.EventID, rec.RecordedAt.Unix(), rec.DayKey,
		boolToInt(rec.Reply), rec.Priority, rec.Reason, rec.Mode, rec.WaitSeconds,
		rec.SpentUSD, rec.CallsToday, rec.CostUSD, boolToInt(rec.DryRun),
	)
	if err != nil {
		return fmt.Errorf("audit: insert decision: %w", err)
	}
	return nil
}

// ByEvent returns all recorded decisions for an event, oldest first.
func (s *Store) ByEvent(ctx context.Context, eventID string) ([]Record, error) {
	query := "SELECT" + selectColumns + " FROM decisions WHERE event_id = ? ORDER BY recorded_at ASC"
	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("audit: query by event: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ByDay returns all recorded decisions charged to a local calendar day,
// oldest first.
func (s *Store) ByDay(ctx context.Context, dayKey string) ([]Record, error) {
	query := "SELECT" + selectColumns + " FROM decisions WHERE day_key = ? ORDER BY recorded_at ASC"
	rows, err := s.db.QueryContext(ctx, query, dayKey)
	if err != nil {
		return nil, fmt.Errorf("audit: query by day: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Close releases the prepared statement and the database handle. Safe to
// call more than once.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.insertStmt != nil {
			s.insertStmt.Close()
		}
		err = s.db.Close()
	})
	return err
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var (
			rec      Record
			recorded int64
			reply    int
			dryRun   int
		)
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.EventID, &recorded, &rec.DayKey,
			&reply, &rec.Priority, &rec.Reason, &rec.Mode, &rec.WaitSeconds,
			&rec.SpentUSD, &rec.CallsToday, &rec.CostUSD, &dryRun,
		); err != nil {
			return nil, fmt.Errorf("audit: scan decision: %w", err)
		}
		rec.RecordedAt = time.Unix(recorded, 0)
		rec.Reply = reply != 0
		rec.DryRun = dryRun != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: iterate decisions: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
