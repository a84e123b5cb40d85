package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
)

// SQLiteMeetingRepo implements domain.MeetingRepository using SQLite, for
// single-node deployments and tests.
type SQLiteMeetingRepo struct {
	db *sql.DB
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo.
func NewSQLiteMeetingRepo(db *sql.DB) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{db: db}
}

// Save persists a meeting (create or status update).
func (r *SQLiteMeetingRepo) Save(ctx context.Context, meeting *domain.Meeting) error {
	exec := sqliteExecutor(ctx, r.db)

	query := `
		INSERT INTO meetings (
			id, owner_id, link_id, start_time, end_time, status,
			booker_name, booker_email, booker_notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at`

	_, err := exec.ExecContext(ctx, query,
		meeting.ID().String(),
		meeting.OwnerID().String(),
		meeting.LinkID().String(),
		encodeTime(meeting.Interval().Start),
		encodeTime(meeting.Interval().End),
		string(meeting.Status()),
		meeting.Booker().Name,
		meeting.Booker().Email,
		meeting.Booker().Notes,
		encodeTime(meeting.CreatedAt()),
		encodeTime(meeting.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save meeting: %w", err)
	}
	return nil
}

// FindByID finds a meeting by its ID.
func (r *SQLiteMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	exec := sqliteExecutor(ctx, r.db)

	query := `
		SELECT id, owner_id, link_id, start_time, end_time, status,
		       booker_name, booker_email, booker_notes, created_at, updated_at
		FROM meetings
		WHERE id = ?`

	meeting, err := scanSQLiteMeeting(exec.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("find meeting: %w", err)
	}
	return meeting, nil
}

// BusyIntervals returns the owner's scheduled intervals overlapping [from, to).
func (r *SQLiteMeetingRepo) BusyIntervals(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.TimeInterval, error) {
	exec := sqliteExecutor(ctx, r.db)

	query := `
		SELECT start_time, end_time
		FROM meetings
		WHERE owner_id = ? AND status = ?
		  AND start_time < ? AND end_time > ?
		ORDER BY start_time`

	rows, err := exec.QueryContext(ctx, query,
		ownerID.String(), string(domain.StatusScheduled), encodeTime(to), encodeTime(from))
	if err != nil {
		return nil, fmt.Errorf("query busy intervals: %w", err)
	}
	defer rows.Close()

	var busy []domain.TimeInterval
	for rows.Next() {
		var startRaw, endRaw string
		if err := rows.Scan(&startRaw, &endRaw); err != nil {
			return nil, fmt.Errorf("scan busy interval: %w", err)
		}
		start, err := decodeTime(startRaw)
		if err != nil {
			return nil, fmt.Errorf("decode start time: %w", err)
		}
		end, err := decodeTime(endRaw)
		if err != nil {
			return nil, fmt.Errorf("decode end time: %w", err)
		}
		busy = append(busy, domain.TimeInterval{Start: start, End: end})
	}
	return busy, rows.Err()
}

// ListByOwner returns the owner's meetings starting within [from, to).
func (r *SQLiteMeetingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	exec := sqliteExecutor(ctx, r.db)

	query := `
		SELECT id, owner_id, link_id, start_time, end_time, status,
		       booker_name, booker_email, booker_notes, created_at, updated_at
		FROM meetings
		WHERE owner_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`

	rows, err := exec.QueryContext(ctx, query, ownerID.String(), encodeTime(from), encodeTime(to))
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		meeting, err := scanSQLiteMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	return meetings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteMeeting(row rowScanner) (*domain.Meeting, error) {
	var (
		idRaw, ownerRaw, linkRaw string
		startRaw, endRaw         string
		status                   string
		name, email, notes       string
		createdRaw, updatedRaw   string
	)
	err := row.Scan(&idRaw, &ownerRaw, &linkRaw, &startRaw, &endRaw, &status,
		&name, &email, &notes, &createdRaw, &updatedRaw)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idRaw)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(ownerRaw)
	if err != nil {
		return nil, err
	}
	linkID, err := uuid.Parse(linkRaw)
	if err != nil {
		return nil, err
	}
	start, err := decodeTime(startRaw)
	if err != nil {
		return nil, err
	}
	end, err := decodeTime(endRaw)
	if err != nil {
		return nil, err
	}
	createdAt, err := decodeTime(createdRaw)
	if err != nil {
		return nil, err
	}
	updatedAt, err := decodeTime(updatedRaw)
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
