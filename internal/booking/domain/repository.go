package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MeetingRepository is the Meeting Store collaborator. Save must be usable
// inside a unit of work so the conflict re-check and the insert commit as one
// atomic unit.
type MeetingRepository interface {
	// Save persists a meeting (create or status update).
	Save(ctx context.Context, meeting *Meeting) error

	// FindByID finds a meeting by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Meeting, error)

	// BusyIntervals returns the intervals of the owner's scheduled meetings
	// that overlap [from, to), in chronological order. Cancelled and otherwise
	// terminal meetings are excluded.
	BusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]TimeInterval, error)

	// ListByOwner returns the owner's meetings starting within [from, to).
	ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*Meeting, error)
}

// BookingLinkRepository is the link configuration store.
type BookingLinkRepository interface {
	Save(ctx context.Context, link *BookingLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*BookingLink, error)
	FindBySlug(ctx context.Context, slug string) (*BookingLink, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OwnerLocker serializes commit attempts per owner so that the conflict check
// and the meeting insert happen as one indivisible unit.
type OwnerLocker interface {
	// Acquire blocks until the owner's commit lock is held, then returns a
	// release function. Release must always be called exactly once.
	Acquire(ctx context.Context, ownerID uuid.UUID) (release func(), err error)
}
