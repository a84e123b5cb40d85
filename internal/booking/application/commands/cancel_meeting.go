package commands

import (
	"context"

	"github.com/fieldflow/bookd/internal/booking/domain"
	sharedApplication "github.com/fieldflow/bookd/internal/shared/application"
	"github.com/google/uuid"
)

// CancelMeetingCommand releases a scheduled meeting's interval.
type CancelMeetingCommand struct {
	OwnerID   uuid.UUID
	MeetingID uuid.UUID
}

// CancelMeetingHandler handles the CancelMeetingCommand.
type CancelMeetingHandler struct {
	meetingRepo domain.MeetingRepository
	uow         sharedApplication.UnitOfWork
}

// NewCancelMeetingHandler creates a new CancelMeetingHandler.
func NewCancelMeetingHandler(meetingRepo domain.MeetingRepository, uow sharedApplication.UnitOfWork) *CancelMeetingHandler {
	return &CancelMeetingHandler{meetingRepo: meetingRepo, uow: uow}
}

// Handle executes the CancelMeetingCommand.
func (h *CancelMeetingHandler) Handle(ctx context.Context, cmd CancelMeetingCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		meeting, err := h.meetingRepo.FindByID(txCtx, cmd.MeetingID)
		if err != nil {
			return err
		}
		if meeting.OwnerID() != cmd.OwnerID {
			return domain.ErrMeetingNotFound
		}

		if err := meeting.Cancel(); err != nil {
			return err
		}

		if err := h.meetingRepo.Save(txCtx, meeting); err != nil {
			return err
		}

		sharedApplication.ApplyEventMetadata(
			meeting.DomainEvents(),
			sharedApplication.NewEventMetadata(cmd.OwnerID),
		)
		return nil
	})
}
