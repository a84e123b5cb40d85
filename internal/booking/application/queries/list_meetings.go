package queries

import (
	"context"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
)

// MeetingDTO is a data transfer object for a committed meeting.
type MeetingDTO struct {
	ID          uuid.UUID `json:"id"`
	LinkID      uuid.UUID `json:"link_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	BookerName  string    `json:"booker_name"`
	BookerEmail string    `json:"booker_email"`
	Notes       string    `json:"notes,omitempty"`
}

// ListMeetingsQuery lists an owner's meetings starting within [From, To).
type ListMeetingsQuery struct {
	OwnerID uuid.UUID
	From    time.Time
	To      time.Time
}

// ListMeetingsHandler handles the ListMeetingsQuery.
type ListMeetingsHandler struct {
	meetingRepo domain.MeetingRepository
}

// NewListMeetingsHandler creates a new ListMeetingsHandler.
func NewListMeetingsHandler(meetingRepo domain.MeetingRepository) *ListMeetingsHandler {
	return &ListMeetingsHandler{meetingRepo: meetingRepo}
}

// Handle executes the ListMeetingsQuery.
func (h *ListMeetingsHandler) Handle(ctx context.Context, query ListMeetingsQuery) ([]MeetingDTO, error) {
	meetings, err := h.meetingRepo.ListByOwner(ctx, query.OwnerID, query.From, query.To)
	if err != nil {
		return nil, err
	}

	dtos := make([]MeetingDTO, len(meetings))
	for i, m := range meetings {
		dtos[i] = MeetingDTO{
			ID:          m.ID(),
			LinkID:      m.LinkID(),
			Start:       m.Interval().Start,
			End:         m.Interval().End,
			Status:      string(m.Status()),
			BookerName:  m.Booker().Name,
			BookerEmail: m.Booker().Email,
			Notes:       m.Booker().Notes,
		}
	}
	return dtos, nil
}
