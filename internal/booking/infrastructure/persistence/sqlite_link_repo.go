package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
)

// SQLiteLinkRepo implements domain.BookingLinkRepository using SQLite.
type SQLiteLinkRepo struct {
	db *sql.DB
}

// NewSQLiteLinkRepo creates a new SQLiteLinkRepo.
func NewSQLiteLinkRepo(db *sql.DB) *SQLiteLinkRepo {
	return &SQLiteLinkRepo{db: db}
}

// Save persists a booking link (create or update).
func (r *SQLiteLinkRepo) Save(ctx context.Context, link *domain.BookingLink) error {
	exec := sqliteExecutor(ctx, r.db)
	schedule := link.Schedule()

	query := `
		INSERT INTO booking_links (
			id, owner_id, slug, name,
			duration_minutes, buffer_before_minutes, buffer_after_minutes,
			available_days, start_hour, end_hour, max_days_ahead, timezone,
			active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			duration_minutes = excluded.duration_minutes,
			buffer_before_minutes = excluded.buffer_before_minutes,
			buffer_after_minutes = excluded.buffer_after_minutes,
			available_days = excluded.available_days,
			start_hour = excluded.start_hour,
			end_hour = excluded.end_hour,
			max_days_ahead = excluded.max_days_ahead,
			timezone = excluded.timezone,
			active = excluded.active,
			updated_at = excluded.updated_at`

	_, err := exec.ExecContext(ctx, query,
		link.ID().String(),
		link.OwnerID().String(),
		link.Slug(),
		link.Name(),
		schedule.DurationMinutes,
		schedule.BufferBeforeMinutes,
		schedule.BufferAfterMinutes,
		formatAvailableDays(schedule.AvailableDays),
		schedule.StartHour,
		schedule.EndHour,
		schedule.MaxDaysAhead,
		schedule.Timezone,
		link.IsActive(),
		encodeTime(link.CreatedAt()),
		encodeTime(link.UpdatedAt()),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("save booking link: %w", err)
	}
	return nil
}

// FindByID finds a booking link by its ID.
func (r *SQLiteLinkRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.BookingLink, error) {
	return r.findOne(ctx, "id = ?", id.String())
}

// FindBySlug finds a booking link by its public slug.
func (r *SQLiteLinkRepo) FindBySlug(ctx context.Context, slug string) (*domain.BookingLink, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *SQLiteLinkRepo) findOne(ctx context.Context, where string, arg any) (*domain.BookingLink, error) {
	exec := sqliteExecutor(ctx, r.db)

	query := `
		SELECT id, owner_id, slug, name,
		       duration_minutes, buffer_before_minutes, buffer_after_minutes,
		       available_days, start_hour, end_hour, max_days_ahead, timezone,
		       active, created_at, updated_at
		FROM booking_links
		WHERE ` + where

	link, err := scanSQLiteLink(exec.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("find booking link: %w", err)
	}
	return link, nil
}

// ListByOwner returns the owner's booking links, oldest first.
func (r *SQLiteLinkRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.BookingLink, error) {
	exec := sqliteExecutor(ctx, r.db)

	query := `
		SELECT id, owner_id, slug, name,
		       duration_minutes, buffer_before_minutes, buffer_after_minutes,
		       available_days, start_hour, end_hour, max_days_ahead, timezone,
		       active, created_at, updated_at
		FROM booking_links
		WHERE owner_id = ?
		ORDER BY created_at`

	rows, err := exec.QueryContext(ctx, query, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("query booking links: %w", err)
	}
	defer rows.Close()

	var links []*domain.BookingLink
	for rows.Next() {
		link, err := scanSQLiteLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Delete removes a booking link.
func (r *SQLiteLinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sqliteExecutor(ctx, r.db)

	result, err := exec.ExecContext(ctx, `DELETE FROM booking_links WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete booking link: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking link: %w", err)
	}
	if affected == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

func scanSQLiteLink(row rowScanner) (*domain.BookingLink, error) {
	var (
		idRaw, ownerRaw        string
		slug, name             string
		schedule               domain.HostSchedule
		days                   string
		active                 bool
		createdRaw, updatedRaw string
	)
	err := row.Scan(&idRaw, &ownerRaw, &slug, &name,
		&schedule.DurationMinutes, &schedule.BufferBeforeMinutes, &schedule.BufferAfterMinutes,
		&days, &schedule.StartHour, &schedule.EndHour, &schedule.MaxDaysAhead, &schedule.Timezone,
		&active, &createdRaw, &updatedRaw)
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
	schedule.AvailableDays, err = parseAvailableDays(days)
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

	return domain.RehydrateBookingLink(id, ownerID, slug, name, schedule, active, createdAt, updatedAt), nil
}
