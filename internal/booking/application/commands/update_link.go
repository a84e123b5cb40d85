package commands

import (
	"context"

	"github.com/fieldflow/bookd/internal/booking/domain"
	sharedApplication "github.com/fieldflow/bookd/internal/shared/application"
	"github.com/google/uuid"
)

// UpdateLinkCommand edits a booking link's name, schedule, or active flag.
// Nil fields are left unchanged.
type UpdateLinkCommand struct {
	OwnerID  uuid.UUID
	LinkID   uuid.UUID
	Name     *string
	Schedule *domain.HostSchedule
	Active   *bool
}

// UpdateLinkHandler handles the UpdateLinkCommand.
type UpdateLinkHandler struct {
	linkRepo domain.BookingLinkRepository
	uow      sharedApplication.UnitOfWork
}

// NewUpdateLinkHandler creates a new UpdateLinkHandler.
func NewUpdateLinkHandler(linkRepo domain.BookingLinkRepository, uow sharedApplication.UnitOfWork) *UpdateLinkHandler {
	return &UpdateLinkHandler{linkRepo: linkRepo, uow: uow}
}

// Handle executes the UpdateLinkCommand.
func (h *UpdateLinkHandler) Handle(ctx context.Context, cmd UpdateLinkCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		link, err := h.linkRepo.FindByID(txCtx, cmd.LinkID)
		if err != nil {
			return err
		}
		if link.OwnerID() != cmd.OwnerID {
			return domain.ErrLinkNotFound
		}

		if cmd.Name != nil {
			link.Rename(*cmd.Name)
		}
		if cmd.Schedule != nil {
			if err := link.UpdateSchedule(*cmd.Schedule); err != nil {
				return err
			}
		}
		if cmd.Active != nil {
			if *cmd.Active {
				link.Activate()
			} else {
				link.Deactivate()
			}
		}

		return h.linkRepo.Save(txCtx, link)
	})
}
