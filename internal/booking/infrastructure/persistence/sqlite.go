package persistence

import (
	"context"
	"database/sql"
	"time"

	sharedPersistence "github.com/fieldflow/bookd/internal/shared/infrastructure/persistence"
)

// sqlExecutor abstracts *sql.DB and *sql.Tx for the SQLite repositories.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func sqliteExecutor(ctx context.Context, db *sql.DB) sqlExecutor {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return db
}

// SQLite has no timestamp type; timestamps round-trip as RFC 3339 UTC strings,
// which sort lexicographically in chronological order.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
