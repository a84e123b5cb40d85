package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	sharedPersistence "github.com/fieldflow/bookd/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// PostgresMeetingRepo implements domain.MeetingRepository using PostgreSQL.
type PostgresMeetingRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresMeetingRepo creates a new PostgresMeetingRepo.
func NewPostgresMeetingRepo(pool *pgxpool.Pool) *PostgresMeetingRepo {
	return &PostgresMeetingRepo{pool: pool}
}

// Save persists a meeting, inserting it or updating its mutable state. The
// meetings_no_overlap constraint backs up the commit path, so a violating
// insert surfaces as domain.ErrSlotConflict rather than a raw driver error.
func (r *PostgresMeetingRepo) Save(ctx context.Context, meeting *domain.Meeting) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO meetings (
			id, owner_id, link_id, start_time, end_time, status,
			booker_name, booker_email, booker_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := exec.Exec(ctx, query,
		meeting.ID(),
		meeting.OwnerID(),
		meeting.LinkID(),
		meeting.Interval().Start,
		meeting.Interval().End,
		string(meeting.Status()),
		meeting.Booker().Name,
		meeting.Booker().Email,
		meeting.Booker().Notes,
		meeting.CreatedAt(),
		meeting.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation) {
			return domain.ErrSlotConflict
		}
		return fmt.Errorf("save meeting: %w", err)
	}
	return nil
}

// FindByID finds a meeting by its ID.
func (r *PostgresMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, owner_id, link_id, start_time, end_time, status,
		       booker_name, booker_email, booker_notes, created_at, updated_at
		FROM meetings
		WHERE id = $1`

	meeting, err := scanMeeting(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("find meeting: %w", err)
	}
	return meeting, nil
}

// BusyIntervals returns the owner's scheduled intervals overlapping [from, to).
func (r *PostgresMeetingRepo) BusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.TimeInterval, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT start_time, end_time
		FROM meetings
		WHERE owner_id = $1 AND status = $2
		  AND start_time < $3 AND end_time > $4
		ORDER BY start_time`

	rows, err := exec.Query(ctx, query, ownerID, string(domain.StatusScheduled), to, from)
	if err != nil {
		return nil, fmt.Errorf("query busy intervals: %w", err)
	}
	defer rows.Close()

	var busy []domain.TimeInterval
	for rows.Next() {
		var interval domain.TimeInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("scan busy interval: %w", err)
		}
		busy = append(busy, interval)
	}
	return busy, rows.Err()
}

// ListByOwner returns the owner's meetings starting within [from, to).
func (r *PostgresMeetingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, owner_id, link_id, start_time, end_time, status,
		       booker_name, booker_email, booker_notes, created_at, updated_at
		FROM meetings
		WHERE owner_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`

	rows, err := exec.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	return meetings, rows.Err()
}

func scanMeeting(row pgx.Row) (*domain.Meeting, error) {
	var (
		id, ownerID, linkID  uuid.UUID
		start, end           time.Time
		status               string
		name, email, notes   string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &ownerID, &linkID, &start, &end, &status,
		&name, &email, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateMeeting(
		id, ownerID, linkID,
		domain.TimeInterval{Start: start, End: end},
		domain.MeetingStatus(status),
		domain.Booker{Name: name, Email: email, Notes: notes},
		createdAt, updatedAt,
	), nil
}
