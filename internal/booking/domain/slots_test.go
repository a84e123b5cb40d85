package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	slotNow  = time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC) // Monday 06:00
	slotDate = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC) // the following Monday
)

func TestCandidateSlots_FullWeekday(t *testing.T) {
	slots, err := CandidateSlots(weekdaySchedule(), slotDate, slotNow)
	require.NoError(t, err)

	// Hours 8..17 with 30-minute meetings on a 30-minute cadence: 18 slots,
	// 08:00 through 16:30. A 17:00 start would end past the day window.
	require.Len(t, slots, 18)
	assert.Equal(t, time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC), slots[0].End)
	assert.Equal(t, time.Date(2025, 6, 9, 16, 30, 0, 0, time.UTC), slots[17].Start)
	assert.Equal(t, time.Date(2025, 6, 9, 17, 0, 0, 0, time.UTC), slots[17].End)
}

func TestCandidateSlots_CadenceIndependentOfDuration(t *testing.T) {
	s := weekdaySchedule()
	s.DurationMinutes = 45

	slots, err := CandidateSlots(s, slotDate, slotNow)
	require.NoError(t, err)

	// Starts still step by 30 minutes; the last start leaving room for a
	// 45-minute meeting before 17:00 is 16:00.
	require.NotEmpty(t, slots)
	assert.Equal(t, 30*time.Minute, slots[1].Start.Sub(slots[0].Start))
	assert.Equal(t, time.Date(2025, 6, 9, 16, 0, 0, 0, time.UTC), slots[len(slots)-1].Start)
	for _, slot := range slots {
		assert.Equal(t, 45*time.Minute, slot.Duration())
	}
}

func TestCandidateSlots_EmptyCases(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{"date before today", slotNow.AddDate(0, 0, -1)},
		{"date past the horizon", slotNow.AddDate(0, 0, 31)},
		{"disabled weekday", time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)}, // Saturday
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := CandidateSlots(weekdaySchedule(), tt.date, slotNow)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}
}

func TestCandidateSlots_HorizonBoundaryIncluded(t *testing.T) {
	// today+maxDaysAhead lands on Wednesday 2025-07-02, an enabled weekday.
	edge := slotNow.AddDate(0, 0, 30)

	slots, err := CandidateSlots(weekdaySchedule(), edge, slotNow)
	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestCandidateSlots_DurationLongerThanWindow(t *testing.T) {
	s := weekdaySchedule()
	s.StartHour = 9
	s.EndHour = 10
	s.DurationMinutes = 120

	slots, err := CandidateSlots(s, slotDate, slotNow)
	require.NoError(t, err)
	assert.Empty(t, slots, "an oversized duration yields no slots, never an error")
}

func TestCandidateSlots_InvalidScheduleRejectedBeforeGeneration(t *testing.T) {
	s := weekdaySchedule()
	s.StartHour = 17
	s.EndHour = 8

	_, err := CandidateSlots(s, slotDate, slotNow)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestCandidateSlots_Deterministic(t *testing.T) {
	first, err := CandidateSlots(weekdaySchedule(), slotDate, slotNow)
	require.NoError(t, err)
	second, err := CandidateSlots(weekdaySchedule(), slotDate, slotNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
