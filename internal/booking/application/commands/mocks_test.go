package commands

import (
	"context"
	"sort"
	"sync"
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

// noopUnitOfWork runs the work function on the caller's context.
type noopUnitOfWork struct{}

func (noopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (noopUnitOfWork) Commit(context.Context) error                       { return nil }
func (noopUnitOfWork) Rollback(context.Context) error                     { return nil }

// stubLocker hands out the lock unconditionally, for tests that exercise a
// single caller.
type stubLocker struct{}

func (stubLocker) Acquire(context.Context, uuid.UUID) (func(), error) {
	return func() {}, nil
}

// memoryMeetingRepo is a thread-safe in-memory store used by the concurrency
// tests, where mock call scripting cannot express interleaved state.
type memoryMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*domain.Meeting
}

func newMemoryMeetingRepo() *memoryMeetingRepo {
	return &memoryMeetingRepo{meetings: make(map[uuid.UUID]*domain.Meeting)}
}

func (r *memoryMeetingRepo) Save(_ context.Context, meeting *domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[meeting.ID()] = meeting
	return nil
}

func (r *memoryMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meeting, ok := r.meetings[id]
	if !ok {
		return nil, domain.ErrMeetingNotFound
	}
	return meeting, nil
}

func (r *memoryMeetingRepo) BusyIntervals(_ context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.TimeInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := domain.TimeInterval{Start: from, End: to}
	var busy []domain.TimeInterval
	for _, meeting := range r.meetings {
		if meeting.OwnerID() != ownerID || !meeting.BlocksAvailability() {
			continue
		}
		if meeting.Interval().Overlaps(window) {
			busy = append(busy, meeting.Interval())
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy, nil
}

func (r *memoryMeetingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var meetings []*domain.Meeting
	for _, meeting := range r.meetings {
		if meeting.OwnerID() != ownerID {
			continue
		}
		start := meeting.Interval().Start
		if !start.Before(from) && start.Before(to) {
			meetings = append(meetings, meeting)
		}
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].Interval().Start.Before(meetings[j].Interval().Start)
	})
	return meetings, nil
}

func (r *memoryMeetingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meetings)
}
