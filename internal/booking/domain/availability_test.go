package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyAt(t *testing.T, startHour, startMin, endHour, endMin int) TimeInterval {
	t.Helper()
	return interval(t, startHour, startMin, endHour, endMin)
}

func TestComputeAvailability_NoMeetingsFullDay(t *testing.T) {
	got, err := ComputeAvailability(weekdaySchedule(), slotDate, nil, slotNow)
	require.NoError(t, err)

	require.Len(t, got, 18)
	assert.Equal(t, time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2025, 6, 9, 16, 30, 0, 0, time.UTC), got[17].Start)
}

func TestComputeAvailability_ExcludesPastAndPresent(t *testing.T) {
	// Querying the same day mid-morning: everything at or before now is gone.
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	got, err := ComputeAvailability(weekdaySchedule(), slotDate, nil, now)
	require.NoError(t, err)

	require.NotEmpty(t, got)
	assert.Equal(t, time.Date(2025, 6, 9, 10, 30, 0, 0, time.UTC), got[0].Start,
		"a slot starting exactly at now is not bookable")
	for _, slot := range got {
		assert.True(t, slot.Start.After(now))
	}
}

func TestComputeAvailability_BufferExclusion(t *testing.T) {
	s := weekdaySchedule()
	s.BufferBeforeMinutes = 15
	s.BufferAfterMinutes = 15
	busy := []TimeInterval{busyAt(t, 10, 0, 10, 30)}

	got, err := ComputeAvailability(s, slotDate, busy, slotNow)
	require.NoError(t, err)

	starts := make(map[time.Time]bool, len(got))
	for _, slot := range got {
		starts[slot.Start] = true
	}

	// 09:30-10:00 buffered to 09:15-10:15 overlaps the meeting; excluded.
	assert.False(t, starts[time.Date(2025, 6, 9, 9, 30, 0, 0, time.UTC)])
	// 09:00-09:30 buffered to 08:45-09:45 does not overlap; included.
	assert.True(t, starts[time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)])
	// The meeting's own slot and the one straddling its tail are excluded.
	assert.False(t, starts[time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 6, 9, 10, 30, 0, 0, time.UTC)])
	// 11:00 buffered to 10:45-11:45 clears the meeting's tail; included.
	assert.True(t, starts[time.Date(2025, 6, 9, 11, 0, 0, 0, time.UTC)])
}

func TestComputeAvailability_TouchingBoundaryNotRejected(t *testing.T) {
	// Busy 10:30-11:00 with no buffers: the 10:00-10:30 and 11:00-11:30
	// candidates touch it exactly and must both survive.
	busy := []TimeInterval{busyAt(t, 10, 30, 11, 0)}

	got, err := ComputeAvailability(weekdaySchedule(), slotDate, busy, slotNow)
	require.NoError(t, err)

	starts := make(map[time.Time]bool, len(got))
	for _, slot := range got {
		starts[slot.Start] = true
	}
	assert.True(t, starts[time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 6, 9, 10, 30, 0, 0, time.UTC)])
	assert.True(t, starts[time.Date(2025, 6, 9, 11, 0, 0, 0, time.UTC)])
}

func TestComputeAvailability_ReturnsUnbufferedIntervals(t *testing.T) {
	s := weekdaySchedule()
	s.BufferBeforeMinutes = 15
	s.BufferAfterMinutes = 15

	got, err := ComputeAvailability(s, slotDate, nil, slotNow)
	require.NoError(t, err)

	require.NotEmpty(t, got)
	for _, slot := range got {
		assert.Equal(t, 30*time.Minute, slot.Duration(), "buffers are never exposed to the caller")
	}
}

func TestComputeAvailability_OutOfHorizonIsEmptyNotError(t *testing.T) {
	got, err := ComputeAvailability(weekdaySchedule(), slotNow.AddDate(0, 0, 45), nil, slotNow)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	busy := []TimeInterval{busyAt(t, 9, 0, 9, 30), busyAt(t, 14, 0, 15, 0)}

	first, err := ComputeAvailability(weekdaySchedule(), slotDate, busy, slotNow)
	require.NoError(t, err)
	second, err := ComputeAvailability(weekdaySchedule(), slotDate, busy, slotNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHasConflict(t *testing.T) {
	candidate := busyAt(t, 9, 30, 10, 0)
	meeting := busyAt(t, 10, 0, 10, 30)

	assert.False(t, HasConflict(candidate, 0, 0, []TimeInterval{meeting}),
		"touching intervals do not conflict without buffers")
	assert.True(t, HasConflict(candidate, 15*time.Minute, 15*time.Minute, []TimeInterval{meeting}))
	assert.False(t, HasConflict(candidate, 0, 0, nil))
}
