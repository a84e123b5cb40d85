package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule is the root of the configuration error family. Every
// schedule validation failure wraps it, so callers can classify with errors.Is.
var ErrInvalidSchedule = errors.New("invalid host schedule")

var (
	ErrInvalidDuration     = fmt.Errorf("%w: duration must be positive", ErrInvalidSchedule)
	ErrInvalidHours        = fmt.Errorf("%w: start hour must be before end hour", ErrInvalidSchedule)
	ErrNegativeBuffer      = fmt.Errorf("%w: buffers cannot be negative", ErrInvalidSchedule)
	ErrBufferTooLarge      = fmt.Errorf("%w: buffers would invert the slot interval", ErrInvalidSchedule)
	ErrNoAvailableDays     = fmt.Errorf("%w: at least one available weekday is required", ErrInvalidSchedule)
	ErrInvalidMaxDaysAhead = fmt.Errorf("%w: booking horizon must be at least one day", ErrInvalidSchedule)
	ErrInvalidTimezone     = fmt.Errorf("%w: unknown IANA timezone", ErrInvalidSchedule)
)

var (
	// ErrInvalidInterval is returned when an interval's end does not follow its start.
	ErrInvalidInterval = errors.New("interval end must be after start")

	// ErrSlotConflict is the expected business failure of a commit: the chosen
	// slot buffer-overlaps a meeting that was booked since availability was shown.
	ErrSlotConflict = errors.New("slot is no longer available")

	// ErrSlotUnaligned is returned when a chosen start does not land on a
	// generated candidate boundary for the link's schedule.
	ErrSlotUnaligned = errors.New("chosen start is not an advertised slot")

	// ErrOutsideBookingWindow is returned when a chosen start falls outside the
	// link's weekday, hour window, or booking horizon.
	ErrOutsideBookingWindow = errors.New("chosen start is outside the booking window")

	ErrInvalidBooker   = errors.New("booker name and email are required")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingFinal    = errors.New("meeting is already in a terminal status")
	ErrLinkNotFound    = errors.New("booking link not found")
	ErrSlugTaken       = errors.New("booking link slug is already in use")
	ErrInvalidSlug     = errors.New("slug must be lowercase letters, digits and hyphens")
	ErrLinkInactive    = errors.New("booking link is not active")
)

// IsConfigurationError reports whether err belongs to the schedule
// configuration error family.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidSchedule)
}
