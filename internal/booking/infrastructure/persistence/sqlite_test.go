package persistence

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	schemaPath := filepath.Join("..", "..", "..", "..", "migrations", "sqlite", "001_initial_schema.sql")
	schema, err := os.ReadFile(schemaPath)
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func testSchedule() domain.HostSchedule {
	return domain.HostSchedule{
		DurationMinutes:     30,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  5,
		AvailableDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		StartHour:    8,
		EndHour:      17,
		MaxDaysAhead: 30,
	}
}
