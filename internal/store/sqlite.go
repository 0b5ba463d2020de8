package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ RunStore = (*SQLiteStore)(nil)

// errorSeparator joins accumulated error messages into a single column.
const errorSeparator = "\n"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	mode             TEXT NOT NULL,
	algorithm        TEXT NOT NULL,
	period_start     INTEGER NOT NULL,
	period_finish    INTEGER NOT NULL,
	starting_capital REAL NOT NULL,
	success          INTEGER NOT NULL,
	errors           TEXT NOT NULL,
	created_at       INTEGER NOT NULL
);
`

// SQLiteStore implements RunStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures the
// schema exists, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %q: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a new run record.
func (s *SQLiteStore) SaveRun(ctx context.Context, record *RunRecord) error {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, mode, algorithm, period_start, period_finish,
			starting_capital, success, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Mode,
		record.Algorithm,
		record.PeriodStart.UnixMilli(),
		record.PeriodFinish.UnixMilli(),
		record.StartingCapital,
		boolToInt(record.Success),
		strings.Join(record.Errors, errorSeparator),
		createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("inserting run %q: %w", record.RunID, err)
	}
	return nil
}

// GetRun retrieves a single run record by its run ID. Returns nil when no
// record exists.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, mode, algorithm, period_start, period_finish,
			starting_capital, success, errors, created_at
		FROM runs WHERE run_id = ?`, runID)

	record, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading run %q: %w", runID, err)
	}
	return record, nil
}

// ListRuns returns the most recent run records, up to limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, mode, algorithm, period_start, period_finish,
			starting_capital, success, errors, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// scanRun reads one row using the provided scan function.
func scanRun(scan func(dest ...any) error) (*RunRecord, error) {
	var (
		record       RunRecord
		periodStart  int64
		periodFinish int64
		success      int
		errorsCol    string
		createdAt    int64
	)
	if err := scan(
		&record.RunID,
		&record.Mode,
		&record.Algorithm,
		&periodStart,
		&periodFinish,
		&record.StartingCapital,
		&success,
		&errorsCol,
		&createdAt,
	); err != nil {
		return nil, err
	}

	record.PeriodStart = time.UnixMilli(periodStart).UTC()
	record.PeriodFinish = time.UnixMilli(periodFinish).UTC()
	record.Success = success != 0
	if errorsCol != "" {
		record.Errors = strings.Split(errorsCol, errorSeparator)
	}
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
