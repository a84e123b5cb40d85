// Package queries contains the read-side operations of the booking engine.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
)

// SlotDTO is a data transfer object for a bookable slot.
type SlotDTO struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
}

// GetAvailabilityQuery contains the parameters for computing availability.
type GetAvailabilityQuery struct {
	OwnerID  uuid.UUID
	Schedule domain.HostSchedule
	Date     time.Time
}

// GetAvailabilityHandler handles the GetAvailabilityQuery.
type GetAvailabilityHandler struct {
	meetingRepo domain.MeetingRepository
	now         func() time.Time
}

// NewGetAvailabilityHandler creates a new GetAvailabilityHandler.
func NewGetAvailabilityHandler(meetingRepo domain.MeetingRepository) *GetAvailabilityHandler {
	return &GetAvailabilityHandler{meetingRepo: meetingRepo, now: time.Now}
}

// WithClock overrides the clock, for tests.
func (h *GetAvailabilityHandler) WithClock(now func() time.Time) *GetAvailabilityHandler {
	h.now = now
	return h
}

// Handle executes the GetAvailabilityQuery. The clock is read exactly once so
// the output is internally consistent for the request.
func (h *GetAvailabilityHandler) Handle(ctx context.Context, query GetAvailabilityQuery) ([]SlotDTO, error) {
	if err := query.Schedule.Validate(); err != nil {
		return nil, err
	}
	loc, err := query.Schedule.Location()
	if err != nil {
		return nil, domain.ErrInvalidTimezone
	}
	now := h.now()

	// The busy read covers the day window widened by the buffers, so meetings
	// just outside the window still collide with buffered edge candidates.
	window := query.Schedule.DayWindow(query.Date, loc).
		Expand(query.Schedule.BufferBefore(), query.Schedule.BufferAfter())

	busy, err := h.meetingRepo.BusyIntervals(ctx, query.OwnerID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("read busy intervals: %w", err)
	}

	slots, err := domain.ComputeAvailability(query.Schedule, query.Date, busy, now)
	if err != nil {
		return nil, err
	}

	dtos := make([]SlotDTO, len(slots))
	for i, slot := range slots {
		dtos[i] = SlotDTO{
			Start:       slot.Start,
			End:         slot.End,
			DurationMin: int(slot.Duration().Minutes()),
		}
	}
	return dtos, nil
}
