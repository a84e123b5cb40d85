package commands

import (
	"context"
	"testing"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteLinkHandler_Success(t *testing.T) {
	ownerID := uuid.New()
	link := existingLink(t, ownerID)

	repo := new(mockLinkRepo)
	repo.On("FindByID", mock.Anything, link.ID()).Return(link, nil)
	repo.On("Delete", mock.Anything, link.ID()).Return(nil)

	handler := NewDeleteLinkHandler(repo, noopUnitOfWork{})
	err := handler.Handle(context.Background(), DeleteLinkCommand{
		OwnerID: ownerID,
		LinkID:  link.ID(),
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteLinkHandler_NotFound(t *testing.T) {
	repo := new(mockLinkRepo)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, domain.ErrLinkNotFound)

	handler := NewDeleteLinkHandler(repo, noopUnitOfWork{})
	err := handler.Handle(context.Background(), DeleteLinkCommand{
		OwnerID: uuid.New(),
		LinkID:  uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteLinkHandler_OwnerMismatchReadsAsNotFound(t *testing.T) {
	link := existingLink(t, uuid.New())

	repo := new(mockLinkRepo)
	repo.On("FindByID", mock.Anything, link.ID()).Return(link, nil)

	handler := NewDeleteLinkHandler(repo, noopUnitOfWork{})
	err := handler.Handle(context.Background(), DeleteLinkCommand{
		OwnerID: uuid.New(),
		LinkID:  link.ID(),
	})

	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
