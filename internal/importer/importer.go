// Package importer is the validated entry point for bulk day-plan
// replacement. Plans arrive as JSON or YAML, are checked structurally and
// semantically, and leave as normalized blocks; nothing malformed reaches
// the phase resolver.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"focusgrid/internal/model"
)

var (
	ErrEmptyPlan      = errors.New("importer: empty plan")
	ErrInvalidPlan    = errors.New("importer: invalid plan")
	ErrBlocksOverlap  = errors.New("importer: block time windows overlap")
	ErrCycleMismatch  = errors.New("importer: cycle total does not match stated duration")
	ErrWindowMismatch = errors.New("importer: time window does not match stated duration")
)

var (
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type PomodoroConfig struct {
	WorkDuration  int `json:"workDuration" yaml:"workDuration"`
	BreakDuration int `json:"breakDuration" yaml:"breakDuration"`
	Cycles        int `json:"cycles" yaml:"cycles"`
}

type BlockConfig struct {
	ID              string          `json:"id" yaml:"id"`
	Title           string          `json:"title" yaml:"title"`
	Type            string          `json:"type" yaml:"type"`
	StartTime       string          `json:"startTime" yaml:"startTime"`
	EndTime         string          `json:"endTime" yaml:"endTime"`
	Chapters        []string        `json:"chapters" yaml:"chapters"`
	Notes           []string        `json:"notes" yaml:"notes"`
	DurationMinutes int             `json:"durationMinutes" yaml:"durationMinutes"`
	Pomodoro        *PomodoroConfig `json:"pomodoro" yaml:"pomodoro"`
	Completed       bool            `json:"completed" yaml:"completed"`
}

type PlanMeta struct {
	Mode     string `json:"mode" yaml:"mode"`
	HardMode *bool  `json:"hardMode" yaml:"hardMode"`
}

type DayPlan struct {
	SchemaVersion string        `json:"schemaVersion" yaml:"schemaVersion"`
	Date          string        `json:"date" yaml:"date"`
	Meta          *PlanMeta     `json:"meta" yaml:"meta"`
	Blocks        []BlockConfig `json:"blocks" yaml:"blocks"`
}

// Plan is the normalized result handed to the Day Record Store.
type Plan struct {
	Date           string
	Meta           PlanMeta
	Blocks         []model.Block
	TotalPomodoros int
}

// Parse decodes, validates and normalizes a raw plan. JSON is detected by
// a leading brace; anything else is treated as YAML.
func Parse(raw []byte) (Plan, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Plan{}, ErrEmptyPlan
	}

	var plan DayPlan
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &plan); err != nil {
			return Plan{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &plan); err != nil {
			return Plan{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	}

	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}

	blocks := make([]model.Block, 0, len(plan.Blocks))
	for _, cfg := range plan.Blocks {
		block, err := GenerateBlock(cfg)
		if err != nil {
			return Plan{}, err
		}
		blocks = append(blocks, block)
	}

	meta := PlanMeta{}
	if plan.Meta != nil {
		meta = *plan.Meta
	}
	return Plan{
		Date:           plan.Date,
		Meta:           meta,
		Blocks:         blocks,
		TotalPomodoros: model.CountTotalPomodoros(blocks),
	}, nil
}

// Validate runs structural and semantic checks over the raw plan.
func (p DayPlan) Validate() error {
	if !datePattern.MatchString(p.Date) {
		return fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidPlan, p.Date)
	}
	if len(p.Blocks) == 0 {
		return fmt.Errorf("%w: no blocks", ErrInvalidPlan)
	}
	for _, cfg := range p.Blocks {
		if err := cfg.validate(); err != nil {
			return err
		}
	}
	return p.checkOverlaps()
}

func (c BlockConfig) validate() error {
	if c.Title == "" {
		return fmt.Errorf("%w: block title is required", ErrInvalidPlan)
	}
	if _, err := model.NormalizeCategory(c.Type); err != nil {
		return fmt.Errorf("%w: block %q: %v", ErrInvalidPlan, c.Title, err)
	}
	for _, clock := range []string{c.StartTime, c.EndTime} {
		if clock != "" && !clockPattern.MatchString(clock) {
			return fmt.Errorf("%w: block %q: invalid HH:MM value %q", ErrInvalidPlan, c.Title, clock)
		}
	}
	if c.Pomodoro != nil {
		if c.Pomodoro.WorkDuration < 1 {
			return fmt.Errorf("%w: block %q: work duration must be >= 1", ErrInvalidPlan, c.Title)
		}
		if c.Pomodoro.BreakDuration < 0 {
			return fmt.Errorf("%w: block %q: break duration must be >= 0", ErrInvalidPlan, c.Title)
		}
		if c.Pomodoro.Cycles < 1 {
			return fmt.Errorf("%w: block %q: cycles must be >= 1", ErrInvalidPlan, c.Title)
		}
		if c.DurationMinutes > 0 && c.Pomodoro.total() != c.DurationMinutes {
			return fmt.Errorf("%w: block %q: durationMinutes (%d) != cycles*work + breaks (%d)",
				ErrCycleMismatch, c.Title, c.DurationMinutes, c.Pomodoro.total())
		}
	}
	if c.StartTime != "" && c.EndTime != "" {
		start := mustClockMinutes(c.StartTime)
		end := mustClockMinutes(c.EndTime)
		if end <= start {
			return fmt.Errorf("%w: block %q: endTime before startTime", ErrInvalidPlan, c.Title)
		}
		window := end - start
		stated := c.DurationMinutes
		if stated == 0 && c.Pomodoro != nil {
			stated = c.Pomodoro.total()
		}
		if stated > 0 && window != stated {
			return fmt.Errorf("%w: block %q: time gap (%dm) != block duration (%dm)",
				ErrWindowMismatch, c.Title, window, stated)
		}
	}
	return nil
}

func (p DayPlan) checkOverlaps() error {
	timed := make([]BlockConfig, 0, len(p.Blocks))
	for _, cfg := range p.Blocks {
		if cfg.StartTime != "" && cfg.EndTime != "" {
			timed = append(timed, cfg)
		}
	}
	for i := 0; i < len(timed); i++ {
		for j := i + 1; j < len(timed); j++ {
			aStart, aEnd := mustClockMinutes(timed[i].StartTime), mustClockMinutes(timed[i].EndTime)
			bStart, bEnd := mustClockMinutes(timed[j].StartTime), mustClockMinutes(timed[j].EndTime)
			if aStart < bEnd && aEnd > bStart {
				return fmt.Errorf("%w: %q and %q", ErrBlocksOverlap, timed[i].Title, timed[j].Title)
			}
		}
	}
	return nil
}

func (p PomodoroConfig) total() int {
	trailing := (p.Cycles - 1) * p.BreakDuration
	if trailing < 0 {
		trailing = 0
	}
	return p.Cycles*p.WorkDuration + trailing
}

// GenerateBlock normalizes a validated config into a model block. Two
// legacy heuristics are preserved from older plan files: the timing mode
// is inferred from the presence of start/end times, and a Study block
// without a pomodoro structure becomes a single-cycle pomodoro spanning
// its whole duration so it still counts toward daily completion.
func GenerateBlock(cfg BlockConfig) (model.Block, error) {
	category, err := model.NormalizeCategory(cfg.Type)
	if err != nil {
		return model.Block{}, fmt.Errorf("%w: block %q: %v", ErrInvalidPlan, cfg.Title, err)
	}

	duration := cfg.DurationMinutes
	if cfg.Pomodoro != nil {
		duration = cfg.Pomodoro.total()
	}
	if duration <= 0 {
		duration = 50
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	mode := model.ModeManual
	if cfg.StartTime != "" && cfg.EndTime != "" {
		mode = model.ModeScheduled
	}

	block := model.Block{
		ID:              id,
		Category:        category,
		Title:           cfg.Title,
		Mode:            mode,
		DurationMinutes: duration,
		StartTime:       cfg.StartTime,
		EndTime:         cfg.EndTime,
		Subjects:        cfg.Chapters,
		Notes:           cfg.Notes,
		Completed:       cfg.Completed,
	}
	switch {
	case cfg.Pomodoro != nil:
		block.Pomodoro = &model.Pomodoro{
			WorkMinutes:  cfg.Pomodoro.WorkDuration,
			BreakMinutes: cfg.Pomodoro.BreakDuration,
			Cycles:       cfg.Pomodoro.Cycles,
		}
	case category == model.CategoryStudy:
		block.Pomodoro = &model.Pomodoro{WorkMinutes: duration, BreakMinutes: 0, Cycles: 1}
	}

	if err := block.Validate(); err != nil {
		return model.Block{}, fmt.Errorf("%w: block %q: %v", ErrInvalidPlan, cfg.Title, err)
	}
	return block, nil
}

func mustClockMinutes(clock string) int {
	mins, err := model.ParseClock(clock)
	if err != nil {
		return 0
	}
	return mins
}
