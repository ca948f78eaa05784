// Package session persists the manually started timer so it survives
// process restarts. It is independent of the scheduled phase resolver:
// only the absolute start instant and planned duration are stored, and
// remaining time is recomputed from the clock on restore. Missed ticks
// are never replayed.
package session

import (
	"context"
	"time"

	"focusgrid/internal/engine"
	"focusgrid/internal/model"
	"focusgrid/internal/storage"
)

type Ledger struct {
	repo storage.Repository
}

func NewLedger(repo storage.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Restored is the one-shot seed handed back after a successful restore.
// The caller consumes it exactly once to pre-seed the running timer.
type Restored struct {
	BlockID   string
	Remaining time.Duration
	Phase     engine.Phase
}

// Start records a running session, overwriting any prior entry. The write
// is best effort: a storage failure is returned for the status line but
// must never stop the caller's tick loop.
func (l *Ledger) Start(ctx context.Context, blockID string, duration time.Duration, phase engine.Phase, now time.Time) error {
	return l.repo.PutActiveSession(ctx, storage.ActiveSession{
		BlockID:   blockID,
		StartedAt: now,
		Duration:  duration,
		Phase:     string(phase),
	})
}

// Stop clears the entry. Idempotent; stopping with no entry present is
// not an error.
func (l *Ledger) Stop(ctx context.Context) error {
	return l.repo.DeleteActiveSession(ctx)
}

// Restore reads the persisted entry once at process start. An expired
// entry, or one whose block no longer exists in today's schedule, is
// discarded silently and reported as absent.
func (l *Ledger) Restore(ctx context.Context, now time.Time, blocks []model.Block) (Restored, bool) {
	entry, err := l.repo.GetActiveSession(ctx)
	if err != nil {
		return Restored{}, false
	}

	remaining := entry.Duration - now.Sub(entry.StartedAt)
	blockExists := false
	for _, b := range blocks {
		if b.ID == entry.BlockID {
			blockExists = true
			break
		}
	}
	if remaining <= 0 || !blockExists {
		_ = l.repo.DeleteActiveSession(ctx)
		return Restored{}, false
	}

	return Restored{
		BlockID:   entry.BlockID,
		Remaining: remaining,
		Phase:     engine.Phase(entry.Phase),
	}, true
}
