package domain

import (
	"time"

	sharedDomain "github.com/fieldflow/bookd/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	meetingAggregateType = "Meeting"
	linkAggregateType    = "BookingLink"
)

// MeetingBooked is emitted when a slot commit succeeds.
type MeetingBooked struct {
	sharedDomain.BaseEvent
	MeetingID uuid.UUID `json:"meeting_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	LinkID    uuid.UUID `json:"link_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// NewMeetingBooked creates a MeetingBooked event.
func NewMeetingBooked(m *Meeting) *MeetingBooked {
	return &MeetingBooked{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), meetingAggregateType, "bookings.meeting.booked"),
		MeetingID: m.ID(),
		OwnerID:   m.OwnerID(),
		LinkID:    m.LinkID(),
		Start:     m.Interval().Start,
		End:       m.Interval().End,
	}
}

// MeetingCancelled is emitted when a meeting's interval is released.
type MeetingCancelled struct {
	sharedDomain.BaseEvent
	MeetingID uuid.UUID `json:"meeting_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
}

// NewMeetingCancelled creates a MeetingCancelled event.
func NewMeetingCancelled(m *Meeting) *MeetingCancelled {
	return &MeetingCancelled{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID(), meetingAggregateType, "bookings.meeting.cancelled"),
		MeetingID: m.ID(),
		OwnerID:   m.OwnerID(),
	}
}

// BookingLinkCreated is emitted when a host publishes a new booking link.
type BookingLinkCreated struct {
	sharedDomain.BaseEvent
	LinkID  uuid.UUID `json:"link_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Slug    string    `json:"slug"`
}

// NewBookingLinkCreated creates a BookingLinkCreated event.
func NewBookingLinkCreated(l *BookingLink) *BookingLinkCreated {
	return &BookingLinkCreated{
		BaseEvent: sharedDomain.NewBaseEvent(l.ID(), linkAggregateType, "bookings.link.created"),
		LinkID:    l.ID(),
		OwnerID:   l.OwnerID(),
		Slug:      l.Slug(),
	}
}
