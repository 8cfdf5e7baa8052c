package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"studyvault/internal/engagement/migrations"
)

var sqlOpen = sql.Open

// SQLiteLedger is a file-backed Ledger scoped to one client installation.
// path can be a file path or ":memory:" for tests.
type SQLiteLedger struct {
	db *sql.DB
}

// OpenSQLiteLedger opens (creating if needed) the ledger database and brings
// its schema up to date.
func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path is required")
	}

	// Register the otelsql driver wrapper
	driverName, err := otelsql.Register("sqlite3",
		otelsql.WithAttributes(semconv.DBSystemSqlite),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteLedger{db: db}, nil
}

// NewSQLiteLedgerFromDB wraps an existing connection whose schema is already
// managed by the caller. Used by tests.
func NewSQLiteLedgerFromDB(db *sql.DB) *SQLiteLedger {
	return &SQLiteLedger{db: db}
}

var _ Ledger = (*SQLiteLedger)(nil)

func (l *SQLiteLedger) Counted(ctx context.Context, resourceID string, c Counter) (bool, error) {
	const q = `SELECT 1 FROM counted WHERE resource_id = ? AND counter = ?`
	var one int
	err := l.db.QueryRowContext(ctx, q, resourceID, string(c)).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ledger lookup: %w", err)
	}
	return true, nil
}

func (l *SQLiteLedger) MarkCounted(ctx context.Context, resourceID string, c Counter) error {
	const q = `INSERT OR IGNORE INTO counted (resource_id, counter) VALUES (?, ?)`
	if _, err := l.db.ExecContext(ctx, q, resourceID, string(c)); err != nil {
		return fmt.Errorf("ledger mark: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
