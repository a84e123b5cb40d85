package domain

import "time"

// ComputeAvailability returns the bookable subset of the schedule's candidate
// slots on the calendar day of date, given a snapshot of busy intervals and a
// single clock reading.
//
// Each surviving slot is strictly in the future and its buffer-expanded window
// overlaps no busy interval. The returned intervals are the unbuffered
// candidates in chronological order. The computation is pure: staleness of the
// busy snapshot is entirely the caller's concern.
func ComputeAvailability(schedule HostSchedule, date time.Time, busy []TimeInterval, now time.Time) ([]TimeInterval, error) {
	candidates, err := CandidateSlots(schedule, date, now)
	if err != nil {
		return nil, err
	}

	available := make([]TimeInterval, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.Start.After(now) {
			continue
		}
		if HasConflict(candidate, schedule.BufferBefore(), schedule.BufferAfter(), busy) {
			continue
		}
		available = append(available, candidate)
	}
	return available, nil
}

// HasConflict reports whether the buffer-expanded candidate overlaps any busy
// interval. At commit time it must be invoked against a freshly read busy set,
// not the snapshot used to display availability.
func HasConflict(candidate TimeInterval, bufferBefore, bufferAfter time.Duration, busy []TimeInterval) bool {
	buffered := candidate.Expand(bufferBefore, bufferAfter)
	for _, b := range busy {
		if buffered.Overlaps(b) {
			return true
		}
	}
	return false
}
