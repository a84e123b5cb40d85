package commands

import (
	"context"
	"errors"

	"github.com/fieldflow/bookd/internal/booking/domain"
	sharedApplication "github.com/fieldflow/bookd/internal/shared/application"
	"github.com/google/uuid"
)

// CreateLinkCommand publishes a new booking link for a host.
type CreateLinkCommand struct {
	OwnerID  uuid.UUID
	Slug     string
	Name     string
	Schedule domain.HostSchedule
}

// CreateLinkResult contains the identifier of the created link.
type CreateLinkResult struct {
	LinkID uuid.UUID
}

// CreateLinkHandler handles the CreateLinkCommand.
type CreateLinkHandler struct {
	linkRepo domain.BookingLinkRepository
	uow      sharedApplication.UnitOfWork
}

// NewCreateLinkHandler creates a new CreateLinkHandler.
func NewCreateLinkHandler(linkRepo domain.BookingLinkRepository, uow sharedApplication.UnitOfWork) *CreateLinkHandler {
	return &CreateLinkHandler{linkRepo: linkRepo, uow: uow}
}

// Handle executes the CreateLinkCommand.
func (h *CreateLinkHandler) Handle(ctx context.Context, cmd CreateLinkCommand) (*CreateLinkResult, error) {
	var result *CreateLinkResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if _, err := h.linkRepo.FindBySlug(txCtx, cmd.Slug); err == nil {
			return domain.ErrSlugTaken
		} else if !errors.Is(err, domain.ErrLinkNotFound) {
			return err
		}

		link, err := domain.NewBookingLink(cmd.OwnerID, cmd.Slug, cmd.Name, cmd.Schedule)
		if err != nil {
			return err
		}

		if err := h.linkRepo.Save(txCtx, link); err != nil {
			return err
		}

		sharedApplication.ApplyEventMetadata(
			link.DomainEvents(),
			sharedApplication.NewEventMetadata(cmd.OwnerID),
		)

		result = &CreateLinkResult{LinkID: link.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
