// Package commands contains the state-changing operations of the booking engine.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	sharedApplication "github.com/fieldflow/bookd/internal/shared/application"
	"github.com/google/uuid"
)

// CommitBookingCommand carries one visitor's attempt to claim a slot.
type CommitBookingCommand struct {
	OwnerID     uuid.UUID
	LinkID      uuid.UUID
	Schedule    domain.HostSchedule
	ChosenStart time.Time
	Booker      domain.Booker
}

// BookingConfirmation is returned when a commit succeeds, carrying the exact
// interval that was reserved.
type BookingConfirmation struct {
	MeetingID uuid.UUID
	Start     time.Time
	End       time.Time
}

// CommitBookingHandler turns a chosen candidate into a persisted meeting,
// contingent on no conflicting busy interval existing at that instant.
//
// The request moves Requested -> Validated -> Committed, or is rejected with
// domain.ErrSlotConflict without mutating anything. The conflict re-check and
// the insert run under the owner's commit lock inside one unit of work, so two
// racing visitors can never both succeed.
type CommitBookingHandler struct {
	meetingRepo domain.MeetingRepository
	locker      domain.OwnerLocker
	uow         sharedApplication.UnitOfWork
	now         func() time.Time
}

// NewCommitBookingHandler creates a new CommitBookingHandler.
func NewCommitBookingHandler(
	meetingRepo domain.MeetingRepository,
	locker domain.OwnerLocker,
	uow sharedApplication.UnitOfWork,
) *CommitBookingHandler {
	return &CommitBookingHandler{
		meetingRepo: meetingRepo,
		locker:      locker,
		uow:         uow,
		now:         time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (h *CommitBookingHandler) WithClock(now func() time.Time) *CommitBookingHandler {
	h.now = now
	return h
}

// Handle executes the CommitBookingCommand.
func (h *CommitBookingHandler) Handle(ctx context.Context, cmd CommitBookingCommand) (*BookingConfirmation, error) {
	now := h.now()

	candidate, err := h.validate(cmd, now)
	if err != nil {
		return nil, err
	}

	release, err := h.locker.Acquire(ctx, cmd.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("acquire owner lock: %w", err)
	}
	defer release()

	var confirmation *BookingConfirmation
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		// Re-check against the live busy set, never the snapshot that was
		// used to advertise the slot.
		buffered := candidate.Expand(cmd.Schedule.BufferBefore(), cmd.Schedule.BufferAfter())
		busy, err := h.meetingRepo.BusyIntervals(txCtx, cmd.OwnerID, buffered.Start, buffered.End)
		if err != nil {
			return fmt.Errorf("read busy intervals: %w", err)
		}
		if domain.HasConflict(candidate, cmd.Schedule.BufferBefore(), cmd.Schedule.BufferAfter(), busy) {
			return domain.ErrSlotConflict
		}

		meeting, err := domain.NewMeeting(cmd.OwnerID, cmd.LinkID, candidate, cmd.Booker)
		if err != nil {
			return err
		}

		if err := h.meetingRepo.Save(txCtx, meeting); err != nil {
			return err
		}

		sharedApplication.ApplyEventMetadata(
			meeting.DomainEvents(),
			sharedApplication.NewEventMetadata(cmd.OwnerID),
		)

		confirmation = &BookingConfirmation{
			MeetingID: meeting.ID(),
			Start:     meeting.Interval().Start,
			End:       meeting.Interval().End,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return confirmation, nil
}

// validate re-derives the candidate slots for the chosen day and requires the
// chosen start to be one of them. The displayed slot list is never trusted.
func (h *CommitBookingHandler) validate(cmd CommitBookingCommand, now time.Time) (domain.TimeInterval, error) {
	if err := cmd.Schedule.Validate(); err != nil {
		return domain.TimeInterval{}, err
	}
	if !cmd.ChosenStart.After(now) {
		return domain.TimeInterval{}, domain.ErrOutsideBookingWindow
	}

	candidates, err := domain.CandidateSlots(cmd.Schedule, cmd.ChosenStart, now)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	if len(candidates) == 0 {
		return domain.TimeInterval{}, domain.ErrOutsideBookingWindow
	}
	for _, candidate := range candidates {
		if candidate.Start.Equal(cmd.ChosenStart) {
			return candidate, nil
		}
	}
	return domain.TimeInterval{}, domain.ErrSlotUnaligned
}
