package engine

import (
	"fmt"
	"time"

	"focusgrid/internal/model"
)

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// PhaseState is the live output of the resolver for the scheduled block
// matching "now". Recomputed whole every tick, never patched.
type PhaseState struct {
	BlockID         string
	PomodoroIndex   int // zero-based, pinned to the final cycle after nominal end
	Phase           Phase
	TimeLeft        time.Duration
	PhaseDuration   time.Duration
	ProgressPercent float64
	SessionName     string
	NextSessionName string
}

// Resolve scans blocks in list order and returns the phase state of the
// first scheduled block whose [start, end) window contains now. Manual
// blocks never participate. The second return is false when no block
// matches (idle).
//
// Resolve is a pure function of its inputs: identical (blocks, now) yield
// identical output.
func Resolve(blocks []model.Block, now time.Time) (PhaseState, bool) {
	for _, block := range blocks {
		if !block.IsScheduled() {
			continue
		}
		// A block spanning midnight is live both late "today" and early
		// "tomorrow", so try the window anchored to now's calendar day and
		// to the day before.
		for _, dayOffset := range []int{0, -1} {
			anchor := now.AddDate(0, 0, dayOffset)
			start := block.StartAt(anchor)
			end := block.EndAt(anchor)
			if start.IsZero() || now.Before(start) || !now.Before(end) {
				continue
			}
			if block.Pomodoro != nil {
				return resolvePomodoro(block, start, now), true
			}
			return resolveSingle(block, start, now), true
		}
	}
	return PhaseState{}, false
}

func resolvePomodoro(block model.Block, start, now time.Time) PhaseState {
	p := *block.Pomodoro
	work := time.Duration(p.WorkMinutes) * time.Minute
	brk := time.Duration(p.BreakMinutes) * time.Minute
	cycleLen := work + brk

	elapsed := now.Sub(start)
	cycleIndex := int(elapsed / cycleLen)
	inCycle := elapsed % cycleLen

	// Past the last nominal cycle the index pins to the final cycle instead
	// of overflowing; trailing time becomes the transition buffer.
	index := cycleIndex
	if index > p.Cycles-1 {
		index = p.Cycles - 1
	}

	state := PhaseState{
		BlockID:       block.ID,
		PomodoroIndex: index,
	}
	if inCycle < work {
		state.Phase = PhaseWork
		state.TimeLeft = work - inCycle
		state.PhaseDuration = work
		state.SessionName = fmt.Sprintf("P%d — Work", index+1)
		if index < p.Cycles-1 {
			state.NextSessionName = fmt.Sprintf("Break %d (%dm)", index+1, p.BreakMinutes)
		} else {
			state.NextSessionName = "End of Block"
		}
	} else {
		state.Phase = PhaseBreak
		state.TimeLeft = cycleLen - inCycle
		state.PhaseDuration = brk
		if index < p.Cycles-1 {
			state.SessionName = fmt.Sprintf("Break %d", index+1)
			state.NextSessionName = fmt.Sprintf("P%d — Work (%dm)", index+2, p.WorkMinutes)
		} else {
			// No break is scheduled after the final repetition; this is the
			// slack between the last pomodoro and the next block.
			state.SessionName = "Transition Buffer"
			state.NextSessionName = "Next Block"
		}
	}
	state.ProgressPercent = progressPercent(state.TimeLeft, state.PhaseDuration)
	return state
}

func resolveSingle(block model.Block, start, now time.Time) PhaseState {
	total := time.Duration(block.DurationMinutes) * time.Minute
	left := total - now.Sub(start)
	if left < 0 {
		left = 0
	}
	return PhaseState{
		BlockID:         block.ID,
		PomodoroIndex:   0,
		Phase:           PhaseWork,
		TimeLeft:        left,
		PhaseDuration:   total,
		ProgressPercent: progressPercent(left, total),
		SessionName:     block.Title,
		NextSessionName: "Next Block",
	}
}

func progressPercent(left, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return 100 - float64(left)/float64(total)*100
}
