package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteLinkRepo_SaveAndFindBySlug(t *testing.T) {
	repo := NewSQLiteLinkRepo(setupTestDB(t))
	ctx := context.Background()

	ownerID := uuid.New()
	link, err := domain.NewBookingLink(ownerID, "intro-call", "Intro Call", testSchedule())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, link))

	found, err := repo.FindBySlug(ctx, "intro-call")
	require.NoError(t, err)
	assert.Equal(t, link.ID(), found.ID())
	assert.Equal(t, ownerID, found.OwnerID())
	assert.Equal(t, "Intro Call", found.Name())
	assert.True(t, found.IsActive())

	schedule := found.Schedule()
	assert.Equal(t, 30, schedule.DurationMinutes)
	assert.Equal(t, 10, schedule.BufferBeforeMinutes)
	assert.Equal(t, 5, schedule.BufferAfterMinutes)
	assert.Equal(t, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}, schedule.AvailableDays)
	assert.Equal(t, 8, schedule.StartHour)
	assert.Equal(t, 17, schedule.EndHour)
	assert.Equal(t, 30, schedule.MaxDaysAhead)
}

func TestSQLiteLinkRepo_FindBySlugNotFound(t *testing.T) {
	repo := NewSQLiteLinkRepo(setupTestDB(t))

	_, err := repo.FindBySlug(context.Background(), "no-such-link")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestSQLiteLinkRepo_SlugIsUnique(t *testing.T) {
	repo := NewSQLiteLinkRepo(setupTestDB(t))
	ctx := context.Background()

	first, err := domain.NewBookingLink(uuid.New(), "intro-call", "Intro Call", testSchedule())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := domain.NewBookingLink(uuid.New(), "intro-call", "Also Intro", testSchedule())
	require.NoError(t, err)

	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrSlugTaken)
}

func TestSQLiteLinkRepo_SaveUpdatesExistingLink(t *testing.T) {
	repo := NewSQLiteLinkRepo(setupTestDB(t))
	ctx := context.Background()

	link, err := domain.NewBookingLink(uuid.New(), "intro-call", "Intro Call", testSchedule())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, link))

	link.Rename("Discovery Call")
	link.Deactivate()
	schedule := testSchedule()
	schedule.DurationMinutes = 60
	require.NoError(t, link.UpdateSchedule(schedule))
	require.NoError(t, repo.Save(ctx, link))

	found, err := repo.FindByID(ctx, link.ID())
	require.NoError(t, err)
	assert.Equal(t, "Discovery Call", found.Name())
	assert.False(t, found.IsActive())
	assert.Equal(t, 60, found.Schedule().DurationMinutes)
}

func TestSQLiteLinkRepo_ListByOwner(t *testing.T) {
	repo := NewSQLiteLinkRepo(setupTestDB(t))
	ctx := context.Background()

	ownerID := uuid.New()
	mine, err := domain.NewBookingLink(ownerID, "intro-call", "Intro Call", testSchedule())
	require.NoError(t, err)
	theirs, err := domain.NewBookingLink(uuid.New(), "other-call", "Other", testSchedule())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mine))
	require.NoError(t, repo.Save(ctx, theirs))

	links, err := repo.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, mine.ID(), links[0].ID())
}

func TestSQLiteLinkRepo_Delete(t *testing.T) {
	repo := NewSQLiteLinkRepo(setupTestDB(t))
	ctx := context.Background()

	link, err := domain.NewBookingLink(uuid.New(), "intro-call", "Intro Call", testSchedule())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, link))

	require.NoError(t, repo.Delete(ctx, link.ID()))

	_, err = repo.FindByID(ctx, link.ID())
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)

	err = repo.Delete(ctx, link.ID())
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}
