// Package locking provides per-owner commit serialization.
package locking

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MutexLocker serializes commits per owner within a single process using one
// mutex per owner ID. Entries are reference-counted and removed when the last
// holder releases, so the map does not grow with the owner population.
type MutexLocker struct {
	mu     sync.Mutex
	owners map[uuid.UUID]*ownerMutex
}

type ownerMutex struct {
	mu   sync.Mutex
	refs int
}

// NewMutexLocker creates a new MutexLocker.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{owners: make(map[uuid.UUID]*ownerMutex)}
}

// Acquire blocks until the owner's lock is held and returns its release func.
func (l *MutexLocker) Acquire(_ context.Context, ownerID uuid.UUID) (func(), error) {
	l.mu.Lock()
	om, ok := l.owners[ownerID]
	if !ok {
		om = &ownerMutex{}
		l.owners[ownerID] = om
	}
	om.refs++
	l.mu.Unlock()

	om.mu.Lock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			om.mu.Unlock()
			l.mu.Lock()
			om.refs--
			if om.refs == 0 {
				delete(l.owners, ownerID)
			}
			l.mu.Unlock()
		})
	}
	return release, nil
}
