package dayrecord

import (
	"context"
	"fmt"
	"time"

	"focusgrid/internal/engine"
	"focusgrid/internal/model"
	"focusgrid/internal/storage"
)

// Rollover runs the midnight transition at most once per calendar-day
// boundary. It returns true when a transition executed on this call.
//
// The guard claims the new date before any work happens, so an
// overlapping poll observes lastRolloverDate == realDate and skips. The
// cost of claiming early: if the archive write then fails, the guard
// stays advanced and rollover will not retry until a restart re-derives
// state from storage. That gap is deliberate; the failure is kept on
// LastError instead of risking a tight retry loop.
func (s *Store) Rollover(ctx context.Context, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return false, ErrNotInitialized
	}

	realDate := model.FormatDate(now)
	if realDate == s.today.Date {
		return false, nil
	}
	if realDate == s.lastRolloverDate {
		// A concurrent poll already claimed this boundary.
		return false, nil
	}
	s.lastRolloverDate = realDate

	if err := s.rolloverLocked(ctx, now, realDate); err != nil {
		s.lastErr = err
		return true, err
	}
	s.lastErr = nil
	return true, nil
}

func (s *Store) rolloverLocked(ctx context.Context, now time.Time, realDate string) error {
	// Stamp the final completion figures on the outgoing day and persist
	// it under its own date key. Re-running this on an already-archived
	// date writes the same values, so redundant invocation is safe.
	outgoing := s.today
	outgoing.CompletionPercentage = engine.CompletionPercent(outgoing.CompletedPomodoros, outgoing.TotalPomodoros)
	outgoing.TreeStage = engine.StageFor(outgoing.CompletionPercentage)
	if err := s.repo.PutDayRecord(ctx, outgoing); err != nil {
		return fmt.Errorf("archive outgoing day %s: %w", outgoing.Date, err)
	}

	// Promote tomorrow when its date matches the new day; otherwise (the
	// process slept across several days) start fresh and leave the stale
	// tomorrow record behind as archive.
	archived, err := s.repo.ListDayRecords(ctx, storage.DayRecordFilter{
		Exclude:     []string{realDate, model.FormatDate(now.AddDate(0, 0, 1))},
		NewestFirst: true,
	})
	if err != nil {
		return fmt.Errorf("reload archive: %w", err)
	}
	streak := engine.ComputeStreak(archived, realDate)

	var today model.DayRecord
	if s.tomorrow.Date == realDate {
		today = s.tomorrow
	} else {
		today = model.NewEmptyDay(realDate, streak)
	}
	if len(today.Blocks) == 0 && !dayHasStarted(today) {
		blocks := model.DefaultMarathonSchedule()
		today.Blocks = blocks
		today.TotalPomodoros = model.CountTotalPomodoros(blocks)
	}
	today.Streak = streak
	if err := s.repo.PutDayRecord(ctx, today); err != nil {
		return fmt.Errorf("persist promoted today: %w", err)
	}

	tomorrow := model.NewEmptyDay(model.FormatDate(now.AddDate(0, 0, 1)), streak)
	if err := s.repo.PutDayRecord(ctx, tomorrow); err != nil {
		return fmt.Errorf("persist new tomorrow: %w", err)
	}

	s.today = today
	s.tomorrow = tomorrow
	s.archived = archived
	s.streak = streak
	return nil
}
