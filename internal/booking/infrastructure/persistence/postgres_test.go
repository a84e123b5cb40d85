package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPostgres connects to TEST_DATABASE_URL, applies the schema and starts
// from empty tables. Tests are skipped when no database is configured.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schemaPath := filepath.Join("..", "..", "..", "..", "migrations", "postgres", "001_initial_schema.sql")
	schema, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE meetings, booking_links`)
	require.NoError(t, err)
	return pool
}

func TestPostgresMeetingRepo_SaveAndFindByID(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresMeetingRepo(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	start := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	meeting := newTestMeeting(t, ownerID, start)
	require.NoError(t, repo.Save(ctx, meeting))

	found, err := repo.FindByID(ctx, meeting.ID())
	require.NoError(t, err)
	assert.Equal(t, meeting.ID(), found.ID())
	assert.Equal(t, ownerID, found.OwnerID())
	assert.True(t, found.Interval().Start.Equal(start))
	assert.Equal(t, domain.StatusScheduled, found.Status())
}

func TestPostgresMeetingRepo_BusyIntervals(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresMeetingRepo(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	day := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	inWindow := newTestMeeting(t, ownerID, day.Add(10*time.Hour))
	cancelled := newTestMeeting(t, ownerID, day.Add(12*time.Hour))
	require.NoError(t, cancelled.Cancel())
	outsideWindow := newTestMeeting(t, ownerID, day.AddDate(0, 0, 1).Add(10*time.Hour))

	for _, m := range []*domain.Meeting{inWindow, cancelled, outsideWindow} {
		require.NoError(t, repo.Save(ctx, m))
	}

	busy, err := repo.BusyIntervals(ctx, ownerID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Start.Equal(inWindow.Interval().Start))
}

func TestPostgresMeetingRepo_OverlapConstraintMapsToSlotConflict(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresMeetingRepo(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	start := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newTestMeeting(t, ownerID, start)))

	// Overlapping scheduled meeting trips the exclusion constraint directly,
	// without going through the application-level conflict check.
	err := repo.Save(ctx, newTestMeeting(t, ownerID, start.Add(15*time.Minute)))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestPostgresLinkRepo_Roundtrip(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresLinkRepo(pool)
	ctx := context.Background()

	ownerID := uuid.New()
	link, err := domain.NewBookingLink(ownerID, "intro-call", "Intro Call", testSchedule())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, link))

	found, err := repo.FindBySlug(ctx, "intro-call")
	require.NoError(t, err)
	assert.Equal(t, link.ID(), found.ID())
	assert.Equal(t, testSchedule().AvailableDays, found.Schedule().AvailableDays)

	other, err := domain.NewBookingLink(uuid.New(), "intro-call", "Clone", testSchedule())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, other), domain.ErrSlugTaken)

	require.NoError(t, repo.Delete(ctx, link.ID()))
	_, err = repo.FindByID(ctx, link.ID())
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}
