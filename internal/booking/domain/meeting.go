package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/fieldflow/bookd/internal/shared/domain"
	"github.com/google/uuid"
)

// MeetingStatus is the lifecycle state of a committed meeting.
type MeetingStatus string

const (
	StatusScheduled MeetingStatus = "scheduled"
	StatusCompleted MeetingStatus = "completed"
	StatusCancelled MeetingStatus = "cancelled"
	StatusNoShow    MeetingStatus = "no_show"
)

// Booker identifies the visitor who claimed a slot.
type Booker struct {
	Name  string
	Email string
	Notes string
}

// Meeting is a committed booking. While its status is scheduled, its interval
// is part of the owner's busy set and blocks overlapping bookings.
//
// A scheduled meeting's interval is immutable; rescheduling is a cancel plus a
// fresh commit, so the engine never reasons about partial updates mid-check.
type Meeting struct {
	sharedDomain.BaseAggregateRoot
	ownerID  uuid.UUID
	linkID   uuid.UUID
	interval TimeInterval
	status   MeetingStatus
	booker   Booker
}

// NewMeeting commits a new meeting in scheduled status.
func NewMeeting(ownerID, linkID uuid.UUID, interval TimeInterval, booker Booker) (*Meeting, error) {
	if !interval.End.After(interval.Start) {
		return nil, ErrInvalidInterval
	}
	if strings.TrimSpace(booker.Name) == "" || strings.TrimSpace(booker.Email) == "" {
		return nil, ErrInvalidBooker
	}

	m := &Meeting{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		linkID:            linkID,
		interval:          interval,
		status:            StatusScheduled,
		booker:            booker,
	}
	m.AddDomainEvent(NewMeetingBooked(m))
	return m, nil
}

func (m *Meeting) OwnerID() uuid.UUID     { return m.ownerID }
func (m *Meeting) LinkID() uuid.UUID      { return m.linkID }
func (m *Meeting) Interval() TimeInterval { return m.interval }
func (m *Meeting) Status() MeetingStatus  { return m.status }
func (m *Meeting) Booker() Booker         { return m.booker }

// BlocksAvailability reports whether this meeting contributes to the busy set.
func (m *Meeting) BlocksAvailability() bool {
	return m.status == StatusScheduled
}

// Cancel releases the meeting's interval back to availability.
func (m *Meeting) Cancel() error {
	if m.status != StatusScheduled {
		return ErrMeetingFinal
	}
	m.status = StatusCancelled
	m.Touch()
	m.AddDomainEvent(NewMeetingCancelled(m))
	return nil
}

// Complete marks a held meeting as completed.
func (m *Meeting) Complete() error {
	if m.status != StatusScheduled {
		return ErrMeetingFinal
	}
	m.status = StatusCompleted
	m.Touch()
	return nil
}

// MarkNoShow records that the booker did not attend.
func (m *Meeting) MarkNoShow() error {
	if m.status != StatusScheduled {
		return ErrMeetingFinal
	}
	m.status = StatusNoShow
	m.Touch()
	return nil
}

// RehydrateMeeting recreates a meeting from persisted state without emitting events.
func RehydrateMeeting(
	id uuid.UUID,
	ownerID, linkID uuid.UUID,
	interval TimeInterval,
	status MeetingStatus,
	booker Booker,
	createdAt, updatedAt time.Time,
) *Meeting {
	return &Meeting{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		ownerID:  ownerID,
		linkID:   linkID,
		interval: interval,
		status:   status,
		booker:   booker,
	}
}
