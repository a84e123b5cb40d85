package commands

import (
	"context"

	"github.com/fieldflow/bookd/internal/booking/domain"
	sharedApplication "github.com/fieldflow/bookd/internal/shared/application"
	"github.com/google/uuid"
)

// DeleteLinkCommand removes a booking link. Committed meetings are untouched.
type DeleteLinkCommand struct {
	OwnerID uuid.UUID
	LinkID  uuid.UUID
}

// DeleteLinkHandler handles the DeleteLinkCommand.
type DeleteLinkHandler struct {
	linkRepo domain.BookingLinkRepository
	uow      sharedApplication.UnitOfWork
}

// NewDeleteLinkHandler creates a new DeleteLinkHandler.
func NewDeleteLinkHandler(linkRepo domain.BookingLinkRepository, uow sharedApplication.UnitOfWork) *DeleteLinkHandler {
	return &DeleteLinkHandler{linkRepo: linkRepo, uow: uow}
}

// Handle executes the DeleteLinkCommand.
func (h *DeleteLinkHandler) Handle(ctx context.Context, cmd DeleteLinkCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		link, err := h.linkRepo.FindByID(txCtx, cmd.LinkID)
		if err != nil {
			return err
		}
		if link.OwnerID() != cmd.OwnerID {
			return domain.ErrLinkNotFound
		}
		return h.linkRepo.Delete(txCtx, link.ID())
	})
}
