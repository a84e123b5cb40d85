package locking

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLocker serializes commits per owner across processes using a
// session-level advisory lock held on a dedicated pool connection.
type PostgresLocker struct {
	pool *pgxpool.Pool
}

// NewPostgresLocker creates a new PostgresLocker.
func NewPostgresLocker(pool *pgxpool.Pool) *PostgresLocker {
	return &PostgresLocker{pool: pool}
}

// Acquire blocks on pg_advisory_lock until the owner's lock is granted. The
// connection is pinned until release so the lock stays with one session.
func (l *PostgresLocker) Acquire(ctx context.Context, ownerID uuid.UUID) (func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	key := advisoryKey(ownerID)
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, key); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, key)
		conn.Release()
	}
	return release, nil
}

// advisoryKey folds an owner UUID into the bigint keyspace of the advisory
// lock functions. Collisions only cause spurious serialization, never a
// missed conflict.
func advisoryKey(ownerID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(ownerID[:])
	return int64(h.Sum64())
}
