package queries

import (
	"context"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockMeetingRepo struct {
	mock.Mock
}

func (m *mockMeetingRepo) Save(ctx context.Context, meeting *domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *mockMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *mockMeetingRepo) BusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.TimeInterval, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeInterval), args.Error(1)
}

func (m *mockMeetingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meeting), args.Error(1)
}

type mockLinkRepo struct {
	mock.Mock
}

func (m *mockLinkRepo) Save(ctx context.Context, link *domain.BookingLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *mockLinkRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.BookingLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingLink), args.Error(1)
}

func (m *mockLinkRepo) FindBySlug(ctx context.Context, slug string) (*domain.BookingLink, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingLink), args.Error(1)
}

func (m *mockLinkRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.BookingLink, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BookingLink), args.Error(1)
}

func (m *mockLinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
