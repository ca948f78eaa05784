package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidCategory   = errors.New("model: invalid block category")
	ErrInvalidTimingMode = errors.New("model: invalid timing mode")
	ErrInvalidClock      = errors.New("model: invalid HH:MM clock value")
)

// BlockCategory is presentational only. Scheduling decisions are driven by
// Mode and the pomodoro structure, never by the category.
type BlockCategory string

const (
	CategoryStudy   BlockCategory = "Study"
	CategoryBreak   BlockCategory = "Break"
	CategoryFitness BlockCategory = "Fitness"
	CategoryPrayer  BlockCategory = "Prayer"
	CategoryReview  BlockCategory = "Review"
)

func (c BlockCategory) IsValid() bool {
	switch c {
	case CategoryStudy, CategoryBreak, CategoryFitness, CategoryPrayer, CategoryReview:
		return true
	default:
		return false
	}
}

// NormalizeCategory folds case so "study" and "Study" mean the same thing.
func NormalizeCategory(raw string) (BlockCategory, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidCategory
	}
	folded := BlockCategory(strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:]))
	if !folded.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return folded, nil
}

type TimingMode string

const (
	// ModeScheduled blocks carry explicit HH:MM start/end wall-clock times
	// and are picked up automatically by the phase resolver.
	ModeScheduled TimingMode = "Scheduled"
	// ModeManual blocks carry only a duration and must be started by hand.
	ModeManual TimingMode = "Manual"
)

func (m TimingMode) IsValid() bool {
	switch m {
	case ModeScheduled, ModeManual:
		return true
	default:
		return false
	}
}

// Pomodoro describes the repeating work/break sub-structure of a block.
type Pomodoro struct {
	WorkMinutes  int
	BreakMinutes int
	Cycles       int
}

// TotalMinutes is the implied duration of the whole structure. The final
// cycle carries no trailing break.
func (p Pomodoro) TotalMinutes() int {
	if p.Cycles <= 0 {
		return 0
	}
	return p.Cycles*p.WorkMinutes + (p.Cycles-1)*p.BreakMinutes
}

func (p Pomodoro) Validate() error {
	if p.WorkMinutes < 1 {
		return errors.New("model: pomodoro work minutes must be >= 1")
	}
	if p.BreakMinutes < 0 {
		return errors.New("model: pomodoro break minutes must be >= 0")
	}
	if p.Cycles < 1 {
		return errors.New("model: pomodoro cycles must be >= 1")
	}
	return nil
}

type Block struct {
	ID              string
	Category        BlockCategory
	Title           string
	Mode            TimingMode
	DurationMinutes int
	StartTime       string // HH:MM, scheduled blocks only
	EndTime         string // HH:MM, scheduled blocks only
	Pomodoro        *Pomodoro
	Subjects        []string
	Notes           []string
	Completed       bool
}

func (b Block) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("model: block id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("model: block title is required")
	}
	if !b.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, b.Category)
	}
	if !b.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimingMode, b.Mode)
	}
	if b.DurationMinutes <= 0 {
		return errors.New("model: block duration must be positive")
	}
	if b.Mode == ModeScheduled {
		if _, err := ParseClock(b.StartTime); err != nil {
			return fmt.Errorf("model: block start time: %w", err)
		}
		if _, err := ParseClock(b.EndTime); err != nil {
			return fmt.Errorf("model: block end time: %w", err)
		}
	}
	if b.Pomodoro != nil {
		if err := b.Pomodoro.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsScheduled reports whether the block participates in automatic phase
// resolution.
func (b Block) IsScheduled() bool {
	return b.Mode == ModeScheduled && b.StartTime != "" && b.EndTime != ""
}

// ParseClock parses an HH:MM wall-clock value into minutes past midnight.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	var h, m int
	if _, err := fmt.Sscanf(value, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return h*60 + m, nil
}

// StartAt anchors the block's start clock time to the calendar day of the
// given instant, in that instant's location.
func (b Block) StartAt(day time.Time) time.Time {
	mins, err := ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}
	}
	return clockOn(day, mins)
}

// EndAt anchors the end clock time the same way. An end at or before the
// start rolls to the next calendar day, so a "20:30"–"00:30" block spans
// midnight instead of never matching.
func (b Block) EndAt(day time.Time) time.Time {
	startMins, err := ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}
	}
	endMins, err := ParseClock(b.EndTime)
	if err != nil {
		return time.Time{}
	}
	end := clockOn(day, endMins)
	if endMins <= startMins {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

func clockOn(day time.Time, minutesOfDay int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutesOfDay/60, minutesOfDay%60, 0, 0, day.Location())
}
