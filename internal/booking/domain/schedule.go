package domain

import (
	"slices"
	"time"
)

// HostSchedule describes when a host accepts bookings through a link. It is
// immutable from the engine's point of view: only explicit host edits through
// the link CRUD replace it.
type HostSchedule struct {
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	AvailableDays       []time.Weekday
	StartHour           int
	EndHour             int
	MaxDaysAhead        int
	Timezone            string
}

// Validate checks the schedule for internal consistency. It must be called
// before any slot generation attempt; nothing is clamped silently.
func (s HostSchedule) Validate() error {
	if s.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if s.BufferBeforeMinutes < 0 || s.BufferAfterMinutes < 0 {
		return ErrNegativeBuffer
	}
	if s.StartHour < 0 || s.EndHour > 23 || s.StartHour >= s.EndHour {
		return ErrInvalidHours
	}
	if len(s.AvailableDays) == 0 {
		return ErrNoAvailableDays
	}
	if s.MaxDaysAhead < 1 {
		return ErrInvalidMaxDaysAhead
	}
	// A slot shorter than its combined buffers cannot be conflict-checked
	// meaningfully; reject the configuration instead of guessing.
	if s.BufferBeforeMinutes+s.BufferAfterMinutes > s.DurationMinutes {
		return ErrBufferTooLarge
	}
	if _, err := s.Location(); err != nil {
		return ErrInvalidTimezone
	}
	return nil
}

// Location resolves the schedule's IANA timezone. An empty name means UTC.
func (s HostSchedule) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// Duration returns the meeting length.
func (s HostSchedule) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// BufferBefore returns the padding required before a meeting.
func (s HostSchedule) BufferBefore() time.Duration {
	return time.Duration(s.BufferBeforeMinutes) * time.Minute
}

// BufferAfter returns the padding required after a meeting.
func (s HostSchedule) BufferAfter() time.Duration {
	return time.Duration(s.BufferAfterMinutes) * time.Minute
}

// DayEnabled reports whether the host accepts bookings on the given weekday.
func (s HostSchedule) DayEnabled(day time.Weekday) bool {
	return slices.Contains(s.AvailableDays, day)
}

// DayWindow returns the bookable window for the calendar day of date,
// resolved in the host's timezone.
func (s HostSchedule) DayWindow(date time.Time, loc *time.Location) TimeInterval {
	y, m, d := date.In(loc).Date()
	return TimeInterval{
		Start: time.Date(y, m, d, s.StartHour, 0, 0, 0, loc),
		End:   time.Date(y, m, d, s.EndHour, 0, 0, 0, loc),
	}
}

// WithinHorizon reports whether the calendar day of date lies between today
// (inclusive) and today+MaxDaysAhead (inclusive), both in the host's zone.
func (s HostSchedule) WithinHorizon(date, now time.Time, loc *time.Location) bool {
	today := startOfDay(now, loc)
	day := startOfDay(date, loc)
	if day.Before(today) {
		return false
	}
	horizon := today.AddDate(0, 0, s.MaxDaysAhead)
	return !day.After(horizon)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
