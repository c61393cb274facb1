package repository

import (
	"context"
	"sync"
	"time"

	"komfovent_gateway/internal/models"
)

// SnapshotMemory holds the latest snapshot in process memory. Panel state
// is re-read on every poll, so nothing is written to disk.
type SnapshotMemory struct {
	mu   sync.RWMutex
	snap models.Snapshot
	ok   bool
}

func NewSnapshotMemory() *SnapshotMemory { return &SnapshotMemory{} }

var _ SnapshotRepo = (*SnapshotMemory)(nil)

// Save replaces the stored snapshot.
func (r *SnapshotMemory) Save(ctx context.Context, s models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.snap, r.ok = s, true
	r.mu.Unlock()
	return nil
}

// Load returns the stored snapshot.
func (r *SnapshotMemory) Load(ctx context.Context) (models.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, r.ok, nil
}

// MarkUnavailable keeps the last reading but flags it as stale. Nothing is
// stored before the first successful poll.
func (r *SnapshotMemory) MarkUnavailable(ctx context.Context, reason string, since time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ok {
		return nil
	}
	r.snap.Available = false
	r.snap.LastError = reason
	if r.snap.FailedSince == nil {
		at := since.UTC()
		r.snap.FailedSince = &at
	}
	return nil
}
