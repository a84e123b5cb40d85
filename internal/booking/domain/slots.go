package domain

import "time"

// SlotCadence is the fixed step between candidate slot starts. It is a
// deliberate constant, independent of the meeting duration, so that slots of
// any duration still align on predictable half-hour boundaries.
const SlotCadence = 30 * time.Minute

// CandidateSlots returns the ordered candidate slots the schedule offers on
// the calendar day of date. The same inputs always yield the same slots.
//
// A date outside the booking horizon or on a disabled weekday yields an empty
// slice, not an error; only an inconsistent schedule is an error.
func CandidateSlots(schedule HostSchedule, date, now time.Time) ([]TimeInterval, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	loc, err := schedule.Location()
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	if !schedule.WithinHorizon(date, now, loc) {
		return nil, nil
	}
	window := schedule.DayWindow(date, loc)
	if !schedule.DayEnabled(window.Start.Weekday()) {
		return nil, nil
	}

	duration := schedule.Duration()
	var slots []TimeInterval
	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(SlotCadence) {
		slots = append(slots, TimeInterval{Start: start, End: start.Add(duration)})
	}
	return slots, nil
}
