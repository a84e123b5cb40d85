package domain

import (
	"regexp"
	"strings"
	"time"

	sharedDomain "github.com/fieldflow/bookd/internal/shared/domain"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BookingLink is a host's public booking page: a slug, a display name and the
// schedule that governs which slots it advertises.
type BookingLink struct {
	sharedDomain.BaseAggregateRoot
	ownerID  uuid.UUID
	slug     string
	name     string
	schedule HostSchedule
	active   bool
}

// NewBookingLink creates an active booking link after validating its schedule.
func NewBookingLink(ownerID uuid.UUID, slug, name string, schedule HostSchedule) (*BookingLink, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}
	if strings.TrimSpace(name) == "" {
		name = slug
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	l := &BookingLink{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		slug:              slug,
		name:              name,
		schedule:          schedule,
		active:            true,
	}
	l.AddDomainEvent(NewBookingLinkCreated(l))
	return l, nil
}

func (l *BookingLink) OwnerID() uuid.UUID     { return l.ownerID }
func (l *BookingLink) Slug() string           { return l.slug }
func (l *BookingLink) Name() string           { return l.name }
func (l *BookingLink) Schedule() HostSchedule { return l.schedule }
func (l *BookingLink) IsActive() bool         { return l.active }

// Rename changes the display name.
func (l *BookingLink) Rename(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	l.name = name
	l.Touch()
}

// UpdateSchedule replaces the link's schedule after validating it.
func (l *BookingLink) UpdateSchedule(schedule HostSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	l.schedule = schedule
	l.Touch()
	return nil
}

// Deactivate stops the link from advertising or accepting slots.
func (l *BookingLink) Deactivate() {
	l.active = false
	l.Touch()
}

// Activate re-enables the link.
func (l *BookingLink) Activate() {
	l.active = true
	l.Touch()
}

// RehydrateBookingLink recreates a link from persisted state without emitting events.
func RehydrateBookingLink(
	id uuid.UUID,
	ownerID uuid.UUID,
	slug, name string,
	schedule HostSchedule,
	active bool,
	createdAt, updatedAt time.Time,
) *BookingLink {
	return &BookingLink{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		ownerID:  ownerID,
		slug:     slug,
		name:     name,
		schedule: schedule,
		active:   active,
	}
}
