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

// PostgresLinkRepo implements domain.BookingLinkRepository using PostgreSQL.
type PostgresLinkRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresLinkRepo creates a new PostgresLinkRepo.
func NewPostgresLinkRepo(pool *pgxpool.Pool) *PostgresLinkRepo {
	return &PostgresLinkRepo{pool: pool}
}

// Save persists a booking link (create or update).
func (r *PostgresLinkRepo) Save(ctx context.Context, link *domain.BookingLink) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	schedule := link.Schedule()

	query := `
		INSERT INTO booking_links (
			id, owner_id, slug, name,
			duration_minutes, buffer_before_minutes, buffer_after_minutes,
			available_days, start_hour, end_hour, max_days_ahead, timezone,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			duration_minutes = EXCLUDED.duration_minutes,
			buffer_before_minutes = EXCLUDED.buffer_before_minutes,
			buffer_after_minutes = EXCLUDED.buffer_after_minutes,
			available_days = EXCLUDED.available_days,
			start_hour = EXCLUDED.start_hour,
			end_hour = EXCLUDED.end_hour,
			max_days_ahead = EXCLUDED.max_days_ahead,
			timezone = EXCLUDED.timezone,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`

	_, err := exec.Exec(ctx, query,
		link.ID(),
		link.OwnerID(),
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
		link.CreatedAt(),
		link.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("save booking link: %w", err)
	}
	return nil
}

// FindByID finds a booking link by its ID.
func (r *PostgresLinkRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.BookingLink, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindBySlug finds a booking link by its public slug.
func (r *PostgresLinkRepo) FindBySlug(ctx context.Context, slug string) (*domain.BookingLink, error) {
	return r.findOne(ctx, "slug = $1", slug)
}

func (r *PostgresLinkRepo) findOne(ctx context.Context, where string, arg any) (*domain.BookingLink, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, owner_id, slug, name,
		       duration_minutes, buffer_before_minutes, buffer_after_minutes,
		       available_days, start_hour, end_hour, max_days_ahead, timezone,
		       active, created_at, updated_at
		FROM booking_links
		WHERE ` + where

	link, err := scanLink(exec.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("find booking link: %w", err)
	}
	return link, nil
}

// ListByOwner returns the owner's booking links, oldest first.
func (r *PostgresLinkRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.BookingLink, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, owner_id, slug, name,
		       duration_minutes, buffer_before_minutes, buffer_after_minutes,
		       available_days, start_hour, end_hour, max_days_ahead, timezone,
		       active, created_at, updated_at
		FROM booking_links
		WHERE owner_id = $1
		ORDER BY created_at`

	rows, err := exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query booking links: %w", err)
	}
	defer rows.Close()

	var links []*domain.BookingLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Delete removes a booking link.
func (r *PostgresLinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	tag, err := exec.Exec(ctx, `DELETE FROM booking_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

func scanLink(row pgx.Row) (*domain.BookingLink, error) {
	var (
		id, ownerID uuid.UUID
		slug, name  string
		schedule    domain.HostSchedule
		days        string
		active      bool
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(&id, &ownerID, &slug, &name,
		&schedule.DurationMinutes, &schedule.BufferBeforeMinutes, &schedule.BufferAfterMinutes,
		&days, &schedule.StartHour, &schedule.EndHour, &schedule.MaxDaysAhead, &schedule.Timezone,
		&active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	schedule.AvailableDays, err = parseAvailableDays(days)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateBookingLink(id, ownerID, slug, name, schedule, active, createdAt, updatedAt), nil
}
