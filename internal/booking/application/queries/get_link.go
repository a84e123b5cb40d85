package queries

import (
	"context"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
)

// LinkDTO is a data transfer object for a booking link.
type LinkDTO struct {
	ID       uuid.UUID   `json:"id"`
	OwnerID  uuid.UUID   `json:"owner_id"`
	Slug     string      `json:"slug"`
	Name     string      `json:"name"`
	Active   bool        `json:"active"`
	Schedule ScheduleDTO `json:"schedule"`
	Created  time.Time   `json:"created_at"`
}

// ScheduleDTO mirrors domain.HostSchedule for transport.
type ScheduleDTO struct {
	DurationMinutes     int    `json:"duration_minutes"`
	BufferBeforeMinutes int    `json:"buffer_before_minutes"`
	BufferAfterMinutes  int    `json:"buffer_after_minutes"`
	AvailableDays       []int  `json:"available_days"`
	StartHour           int    `json:"start_hour"`
	EndHour             int    `json:"end_hour"`
	MaxDaysAhead        int    `json:"max_days_ahead"`
	Timezone            string `json:"timezone,omitempty"`
}

func newLinkDTO(l *domain.BookingLink) LinkDTO {
	s := l.Schedule()
	days := make([]int, len(s.AvailableDays))
	for i, d := range s.AvailableDays {
		days[i] = int(d)
	}
	return LinkDTO{
		ID:      l.ID(),
		OwnerID: l.OwnerID(),
		Slug:    l.Slug(),
		Name:    l.Name(),
		Active:  l.IsActive(),
		Schedule: ScheduleDTO{
			DurationMinutes:     s.DurationMinutes,
			BufferBeforeMinutes: s.BufferBeforeMinutes,
			BufferAfterMinutes:  s.BufferAfterMinutes,
			AvailableDays:       days,
			StartHour:           s.StartHour,
			EndHour:             s.EndHour,
			MaxDaysAhead:        s.MaxDaysAhead,
			Timezone:            s.Timezone,
		},
		Created: l.CreatedAt(),
	}
}

// GetLinkQuery resolves a booking link by its public slug.
type GetLinkQuery struct {
	Slug string
}

// GetLinkHandler handles the GetLinkQuery.
type GetLinkHandler struct {
	linkRepo domain.BookingLinkRepository
}

// NewGetLinkHandler creates a new GetLinkHandler.
func NewGetLinkHandler(linkRepo domain.BookingLinkRepository) *GetLinkHandler {
	return &GetLinkHandler{linkRepo: linkRepo}
}

// Handle executes the GetLinkQuery.
func (h *GetLinkHandler) Handle(ctx context.Context, query GetLinkQuery) (*LinkDTO, error) {
	link, err := h.linkRepo.FindBySlug(ctx, query.Slug)
	if err != nil {
		return nil, err
	}
	dto := newLinkDTO(link)
	return &dto, nil
}

// ListLinksQuery lists a host's booking links.
type ListLinksQuery struct {
	OwnerID uuid.UUID
}

// ListLinksHandler handles the ListLinksQuery.
type ListLinksHandler struct {
	linkRepo domain.BookingLinkRepository
}

// NewListLinksHandler creates a new ListLinksHandler.
func NewListLinksHandler(linkRepo domain.BookingLinkRepository) *ListLinksHandler {
	return &ListLinksHandler{linkRepo: linkRepo}
}

// Handle executes the ListLinksQuery.
func (h *ListLinksHandler) Handle(ctx context.Context, query ListLinksQuery) ([]LinkDTO, error) {
	links, err := h.linkRepo.ListByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]LinkDTO, len(links))
	for i, l := range links {
		dtos[i] = newLinkDTO(l)
	}
	return dtos, nil
}
