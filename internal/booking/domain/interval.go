// Package domain implements the booking availability and slot commitment core:
// interval algebra, slot generation, availability computation, and the Meeting
// and BookingLink aggregates.
package domain

import "time"

// TimeInterval is a half-open time range [Start, End) in a single explicit
// location. It is used both for candidate slots and for busy ranges.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval creates an interval, enforcing Start < End.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !end.After(start) {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals share any instant.
// The single closed-open condition subsumes partial overlap from either side
// and full containment; touching boundaries do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Expand widens the interval by the given buffers. The result is only ever
// used for conflict testing and is never shown to a booker.
func (i TimeInterval) Expand(before, after time.Duration) TimeInterval {
	return TimeInterval{
		Start: i.Start.Add(-before),
		End:   i.End.Add(after),
	}
}

// Contains reports whether t falls within the half-open interval.
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the interval length.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Equal reports whether both endpoints denote the same instants.
func (i TimeInterval) Equal(other TimeInterval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}
