// Package app wires the booking engine's dependencies into a running service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fieldflow/bookd/internal/booking/application/commands"
	"github.com/fieldflow/bookd/internal/booking/application/queries"
	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/fieldflow/bookd/internal/booking/infrastructure/locking"
	bookingPersistence "github.com/fieldflow/bookd/internal/booking/infrastructure/persistence"
	sharedApplication "github.com/fieldflow/bookd/internal/shared/application"
	sharedPersistence "github.com/fieldflow/bookd/internal/shared/infrastructure/persistence"
	"github.com/fieldflow/bookd/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage. Exactly one of Pool (Postgres) or DB (SQLite) is set.
	Pool *pgxpool.Pool
	DB   *sql.DB

	RedisClient *redis.Client

	MeetingRepo domain.MeetingRepository
	LinkRepo    domain.BookingLinkRepository
	Locker      domain.OwnerLocker
	UnitOfWork  sharedApplication.UnitOfWork

	// Query handlers
	GetAvailabilityHandler *queries.GetAvailabilityHandler
	GetLinkHandler         *queries.GetLinkHandler
	ListLinksHandler       *queries.ListLinksHandler
	ListMeetingsHandler    *queries.ListMeetingsHandler

	// Command handlers
	CommitBookingHandler *commands.CommitBookingHandler
	CancelMeetingHandler *commands.CancelMeetingHandler
	CreateLinkHandler    *commands.CreateLinkHandler
	UpdateLinkHandler    *commands.UpdateLinkHandler
	DeleteLinkHandler    *commands.DeleteLinkHandler
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}
	if err := c.initLocker(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.UsesPostgres() {
		pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("create postgres pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return fmt.Errorf("ping postgres: %w", err)
		}

		c.Pool = pool
		c.MeetingRepo = bookingPersistence.NewPostgresMeetingRepo(pool)
		c.LinkRepo = bookingPersistence.NewPostgresLinkRepo(pool)
		c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)
		c.Logger.Info("connected to postgres")
		return nil
	}

	db, err := sql.Open("sqlite", c.Config.SQLitePath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite tolerates a single writer; serialize all access.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("configure sqlite: %w", err)
	}

	c.DB = db
	c.MeetingRepo = bookingPersistence.NewSQLiteMeetingRepo(db)
	c.LinkRepo = bookingPersistence.NewSQLiteLinkRepo(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
	c.Logger.Info("opened sqlite database", "path", c.Config.SQLitePath)
	return nil
}

// initLocker picks the strongest available commit lock: Redis when configured,
// Postgres advisory locks when running on Postgres, otherwise in-process.
func (c *Container) initLocker(ctx context.Context) error {
	if c.Config.RedisURL != "" {
		opt, err := redis.ParseURL(c.Config.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opt)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("ping redis: %w", err)
		}

		c.RedisClient = client
		c.Locker = locking.NewRedisLocker(client)
		c.Logger.Info("using redis owner locks")
		return nil
	}

	if c.Pool != nil {
		c.Locker = locking.NewPostgresLocker(c.Pool)
		c.Logger.Info("using postgres advisory owner locks")
		return nil
	}

	c.Locker = locking.NewMutexLocker()
	c.Logger.Info("using in-process owner locks")
	return nil
}

func (c *Container) initHandlers() {
	c.GetAvailabilityHandler = queries.NewGetAvailabilityHandler(c.MeetingRepo)
	c.GetLinkHandler = queries.NewGetLinkHandler(c.LinkRepo)
	c.ListLinksHandler = queries.NewListLinksHandler(c.LinkRepo)
	c.ListMeetingsHandler = queries.NewListMeetingsHandler(c.MeetingRepo)

	c.CommitBookingHandler = commands.NewCommitBookingHandler(c.MeetingRepo, c.Locker, c.UnitOfWork)
	c.CancelMeetingHandler = commands.NewCancelMeetingHandler(c.MeetingRepo, c.UnitOfWork)
	c.CreateLinkHandler = commands.NewCreateLinkHandler(c.LinkRepo, c.UnitOfWork)
	c.UpdateLinkHandler = commands.NewUpdateLinkHandler(c.LinkRepo, c.UnitOfWork)
	c.DeleteLinkHandler = commands.NewDeleteLinkHandler(c.LinkRepo, c.UnitOfWork)
}

// ScheduleDefaults builds the default host schedule from configuration.
func (c *Container) ScheduleDefaults() domain.HostSchedule {
	return domain.HostSchedule{
		DurationMinutes:     c.Config.DefaultDurationMinutes,
		BufferBeforeMinutes: c.Config.DefaultBufferBeforeMinutes,
		BufferAfterMinutes:  c.Config.DefaultBufferAfterMinutes,
		AvailableDays:       parseWeekdays(c.Config.DefaultAvailableDays),
		StartHour:           c.Config.DefaultStartHour,
		EndHour:             c.Config.DefaultEndHour,
		MaxDaysAhead:        c.Config.DefaultMaxDaysAhead,
		Timezone:            c.Config.DefaultTimezone,
	}
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}

func parseWeekdays(value string) []time.Weekday {
	var days []time.Weekday
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case "0":
			days = append(days, time.Sunday)
		case "1":
			days = append(days, time.Monday)
		case "2":
			days = append(days, time.Tuesday)
		case "3":
			days = append(days, time.Wednesday)
		case "4":
			days = append(days, time.Thursday)
		case "5":
			days = append(days, time.Friday)
		case "6":
			days = append(days, time.Saturday)
		}
	}
	return days
}
