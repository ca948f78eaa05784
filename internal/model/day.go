package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var ErrInvalidDate = errors.New("model: invalid date key, expected YYYY-MM-DD")

// DateKey is the canonical layout for Day Record keys.
const DateKey = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TreeStage is the discrete growth bucket derived from completion
// percentage. Feedback presentation only.
type TreeStage string

const (
	StageSeed   TreeStage = "seed"
	StageSprout TreeStage = "sprout"
	StageYoung  TreeStage = "young"
	StageStrong TreeStage = "strong"
	StageFull   TreeStage = "full"
)

func (s TreeStage) IsValid() bool {
	switch s {
	case StageSeed, StageSprout, StageYoung, StageStrong, StageFull:
		return true
	default:
		return false
	}
}

// Stage display names. The views layer keys its styling and tree art on
// these exact strings.
const (
	StageLabelSeed   = "Seed"
	StageLabelSprout = "Sprout"
	StageLabelYoung  = "Young Tree"
	StageLabelStrong = "Strong Tree"
	StageLabelFull   = "Full Growth"
)

// Label returns the display name for a stage.
func (s TreeStage) Label() string {
	switch s {
	case StageSeed:
		return StageLabelSeed
	case StageSprout:
		return StageLabelSprout
	case StageYoung:
		return StageLabelYoung
	case StageStrong:
		return StageLabelStrong
	case StageFull:
		return StageLabelFull
	default:
		return string(s)
	}
}

type Reflection struct {
	Worked      string
	Failed      string
	Improvement string
}

// DayRecord is one calendar day's plan and outcome. Created empty when a
// date is first accessed, mutated throughout the day, frozen at archive
// time.
type DayRecord struct {
	Date                 string // YYYY-MM-DD, local calendar day
	Blocks               []Block
	TotalPomodoros       int
	CompletedPomodoros   int
	SkippedSessions      int
	CompletionPercentage int
	TreeStage            TreeStage
	TotalStudyMinutes    int
	TotalBreakMinutes    int
	Distractions         []string
	Streak               int
	Reflection           Reflection
}

func (d DayRecord) Validate() error {
	if !dateKeyPattern.MatchString(d.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, d.Date)
	}
	if !d.TreeStage.IsValid() {
		return fmt.Errorf("model: invalid tree stage %q", d.TreeStage)
	}
	if d.CompletedPomodoros < 0 || d.TotalPomodoros < 0 {
		return errors.New("model: pomodoro counters must be non-negative")
	}
	for i, b := range d.Blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("model: block %d: %w", i, err)
		}
	}
	return nil
}

// Block returns the block with the given id, if present.
func (d DayRecord) Block(id string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// NewEmptyDay creates an unplanned record for a date, carrying the streak
// observed at creation time.
func NewEmptyDay(date string, streak int) DayRecord {
	return DayRecord{
		Date:         date,
		Blocks:       []Block{},
		TreeStage:    StageSeed,
		Distractions: []string{},
		Streak:       streak,
	}
}

// CountTotalPomodoros sums planned repeat-units across a block list. A
// pomodoro block contributes its cycle count; blocks without a repeating
// structure contribute nothing.
func CountTotalPomodoros(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		if b.Pomodoro != nil {
			total += b.Pomodoro.Cycles
		}
	}
	return total
}

// FormatDate renders an instant as a Day Record date key in its location.
func FormatDate(t time.Time) string {
	return t.Format(DateKey)
}
