// Package dayrecord owns the "today" and "tomorrow" day records, the
// archive view over persisted days, and the midnight rollover. All
// mutation goes through the store so the records have a single writer;
// the mutex preserves that guarantee under real goroutines.
package dayrecord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"focusgrid/internal/engine"
	"focusgrid/internal/model"
	"focusgrid/internal/storage"
)

var ErrNotInitialized = errors.New("dayrecord: store not initialized")

// Target selects which live day a mutation applies to.
type Target string

const (
	TargetToday    Target = "today"
	TargetTomorrow Target = "tomorrow"
)

type Store struct {
	mu   sync.Mutex
	repo storage.Repository

	today    model.DayRecord
	tomorrow model.DayRecord
	archived []model.DayRecord
	streak   int
	settings model.Settings

	// lastRolloverDate guards the midnight transition; see Rollover.
	lastRolloverDate string
	lastErr          error
	initialized      bool
}

func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo}
}

// Init loads or creates today and tomorrow, reads the archive and streak,
// and merges persisted settings over the defaults. A brand-new or
// still-empty today is seeded with the built-in marathon schedule, which
// also switches hard mode on.
func (s *Store) Init(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked(ctx, now)
}

func (s *Store) initLocked(ctx context.Context, now time.Time) error {
	todayStr := model.FormatDate(now)
	tomorrowStr := model.FormatDate(now.AddDate(0, 0, 1))

	settings, err := s.repo.GetSettings(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		settings = model.DefaultSettings()
		if putErr := s.repo.PutSettings(ctx, settings); putErr != nil {
			return fmt.Errorf("persist default settings: %w", putErr)
		}
	case err != nil:
		return fmt.Errorf("load settings: %w", err)
	default:
		settings = model.MergeSettings(settings)
	}

	archived, err := s.repo.ListDayRecords(ctx, storage.DayRecordFilter{
		Exclude:     []string{todayStr, tomorrowStr},
		NewestFirst: true,
	})
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	streak := engine.ComputeStreak(archived, todayStr)

	today, err := s.repo.GetDayRecord(ctx, todayStr)
	if errors.Is(err, storage.ErrNotFound) {
		today = model.NewEmptyDay(todayStr, streak)
	} else if err != nil {
		return fmt.Errorf("load today: %w", err)
	}

	if !dayHasStarted(today) && len(today.Blocks) == 0 {
		blocks := model.DefaultMarathonSchedule()
		today.Blocks = blocks
		today.TotalPomodoros = model.CountTotalPomodoros(blocks)
		today.CompletionPercentage = 0
		today.TreeStage = model.StageSeed
		today.Streak = streak

		// The marathon plan runs in hard mode.
		settings.HardMode = true
		settings.FocusTreeEnabled = true
		if err := s.repo.PutSettings(ctx, settings); err != nil {
			return fmt.Errorf("persist settings: %w", err)
		}
		if err := s.repo.PutDayRecord(ctx, today); err != nil {
			return fmt.Errorf("persist today: %w", err)
		}
	}

	tomorrow, err := s.repo.GetDayRecord(ctx, tomorrowStr)
	if errors.Is(err, storage.ErrNotFound) {
		tomorrow = model.NewEmptyDay(tomorrowStr, streak)
		if putErr := s.repo.PutDayRecord(ctx, tomorrow); putErr != nil {
			return fmt.Errorf("persist tomorrow: %w", putErr)
		}
	} else if err != nil {
		return fmt.Errorf("load tomorrow: %w", err)
	}

	s.settings = settings
	s.today = today
	s.tomorrow = tomorrow
	s.archived = archived
	s.streak = streak
	s.lastRolloverDate = todayStr
	s.initialized = true
	return nil
}

func dayHasStarted(day model.DayRecord) bool {
	if day.CompletedPomodoros > 0 || day.TotalStudyMinutes > 0 {
		return true
	}
	for _, b := range day.Blocks {
		if b.Completed {
			return true
		}
	}
	return false
}

func (s *Store) Today() model.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today
}

func (s *Store) Tomorrow() model.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tomorrow
}

func (s *Store) Archived() []model.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DayRecord, len(s.archived))
	copy(out, s.archived)
	return out
}

func (s *Store) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies a mutation and persists the merged result.
func (s *Store) UpdateSettings(ctx context.Context, mutate func(*model.Settings)) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return model.Settings{}, ErrNotInitialized
	}
	next := s.settings
	mutate(&next)
	s.settings = next
	if err := s.repo.PutSettings(ctx, next); err != nil {
		return next, fmt.Errorf("persist settings: %w", err)
	}
	return next, nil
}

// UpdateToday applies a mutation to today's record, recomputes the derived
// completion fields and persists the whole record. The in-memory snapshot
// stays authoritative even when the write fails; the error is surfaced
// because a lost day-record write risks data loss.
func (s *Store) UpdateToday(ctx context.Context, mutate func(*model.DayRecord)) (model.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return model.DayRecord{}, ErrNotInitialized
	}
	next := s.today
	mutate(&next)
	next.CompletionPercentage = engine.CompletionPercent(next.CompletedPomodoros, next.TotalPomodoros)
	next.TreeStage = engine.StageFor(next.CompletionPercentage)
	s.today = next
	if err := s.repo.PutDayRecord(ctx, next); err != nil {
		return next, fmt.Errorf("persist today: %w", err)
	}
	return next, nil
}

// UpdateTomorrow applies a mutation to tomorrow's plan and persists it.
func (s *Store) UpdateTomorrow(ctx context.Context, mutate func(*model.DayRecord)) (model.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return model.DayRecord{}, ErrNotInitialized
	}
	next := s.tomorrow
	mutate(&next)
	s.tomorrow = next
	if err := s.repo.PutDayRecord(ctx, next); err != nil {
		return next, fmt.Errorf("persist tomorrow: %w", err)
	}
	return next, nil
}

func (s *Store) update(ctx context.Context, target Target, mutate func(*model.DayRecord)) (model.DayRecord, error) {
	if target == TargetTomorrow {
		return s.UpdateTomorrow(ctx, mutate)
	}
	return s.UpdateToday(ctx, mutate)
}

// AddBlock appends a block and recomputes the planned pomodoro total.
func (s *Store) AddBlock(ctx context.Context, target Target, block model.Block) (model.DayRecord, error) {
	return s.update(ctx, target, func(d *model.DayRecord) {
		d.Blocks = append(append([]model.Block{}, d.Blocks...), block)
		d.TotalPomodoros = model.CountTotalPomodoros(d.Blocks)
	})
}

// UpdateBlock replaces the block with the same id.
func (s *Store) UpdateBlock(ctx context.Context, target Target, block model.Block) (model.DayRecord, error) {
	return s.update(ctx, target, func(d *model.DayRecord) {
		blocks := make([]model.Block, len(d.Blocks))
		copy(blocks, d.Blocks)
		for i := range blocks {
			if blocks[i].ID == block.ID {
				blocks[i] = block
			}
		}
		d.Blocks = blocks
		d.TotalPomodoros = model.CountTotalPomodoros(blocks)
	})
}

// RemoveBlock drops a block by id.
func (s *Store) RemoveBlock(ctx context.Context, target Target, blockID string) (model.DayRecord, error) {
	return s.update(ctx, target, func(d *model.DayRecord) {
		blocks := make([]model.Block, 0, len(d.Blocks))
		for _, b := range d.Blocks {
			if b.ID != blockID {
				blocks = append(blocks, b)
			}
		}
		d.Blocks = blocks
		d.TotalPomodoros = model.CountTotalPomodoros(blocks)
	})
}

// ReplaceBlocks is the import boundary: the list arrives pre-validated and
// replaces the whole plan; only the derived counters are recomputed here.
func (s *Store) ReplaceBlocks(ctx context.Context, target Target, blocks []model.Block) (model.DayRecord, error) {
	return s.update(ctx, target, func(d *model.DayRecord) {
		d.Blocks = blocks
		d.TotalPomodoros = model.CountTotalPomodoros(blocks)
	})
}

// RecordCompletedPomodoro increments the completed repeat-unit counter and
// credits the finished work segment's minutes.
func (s *Store) RecordCompletedPomodoro(ctx context.Context, workMinutes int) (model.DayRecord, error) {
	return s.UpdateToday(ctx, func(d *model.DayRecord) {
		d.CompletedPomodoros++
		d.TotalStudyMinutes += workMinutes
	})
}

// RecordBreakMinutes accumulates break time against today.
func (s *Store) RecordBreakMinutes(ctx context.Context, minutes int) (model.DayRecord, error) {
	return s.UpdateToday(ctx, func(d *model.DayRecord) {
		d.TotalBreakMinutes += minutes
	})
}

// RecordSkippedSession counts a deliberately skipped repeat unit.
func (s *Store) RecordSkippedSession(ctx context.Context) (model.DayRecord, error) {
	return s.UpdateToday(ctx, func(d *model.DayRecord) {
		d.SkippedSessions++
	})
}

// AddDistraction appends a free-form distraction note to today.
func (s *Store) AddDistraction(ctx context.Context, text string) (model.DayRecord, error) {
	return s.UpdateToday(ctx, func(d *model.DayRecord) {
		d.Distractions = append(append([]string{}, d.Distractions...), text)
	})
}

// RecalculateProgress is the slow-cadence safety net: it recomputes the
// derived fields and persists only when something actually changed.
func (s *Store) RecalculateProgress(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return false, ErrNotInitialized
	}
	pct := engine.CompletionPercent(s.today.CompletedPomodoros, s.today.TotalPomodoros)
	stage := engine.StageFor(pct)
	if pct == s.today.CompletionPercentage && stage == s.today.TreeStage {
		return false, nil
	}
	s.today.CompletionPercentage = pct
	s.today.TreeStage = stage
	if err := s.repo.PutDayRecord(ctx, s.today); err != nil {
		return true, fmt.Errorf("persist today: %w", err)
	}
	return true, nil
}

// LastError returns the most recent rollover failure, if any.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
