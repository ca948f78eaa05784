// Package alarm turns phase transitions into user-facing notices, gates
// them on per-event configuration, and drives the hard-mode re-alert
// loop.
package alarm

import (
	"fmt"

	"focusgrid/internal/engine"
	"focusgrid/internal/model"
)

// Notice is one alarm occurrence. The event key selects the per-event
// audio/vibration configuration.
type Notice struct {
	Event    model.AlarmEvent
	Title    string
	Subtitle string
}

// NoticeFor maps a detected transition to at most one notice. The second
// return is false for ticks with nothing to announce. Counters are the
// caller's concern: a disabled alarm still counts.
func NoticeFor(tr engine.Transition, prev, next *engine.PhaseState) (Notice, bool) {
	switch tr.Kind {
	case engine.TransitionBlockEntered:
		if prev == nil {
			return Notice{
				Event:    model.AlarmBlockStart,
				Title:    "Marathon Block Started",
				Subtitle: fmt.Sprintf("Focus. %s", next.SessionName),
			}, true
		}
		return Notice{
			Event:    model.AlarmBlockStart,
			Title:    fmt.Sprintf("Block Started: %s", next.SessionName),
			Subtitle: fmt.Sprintf("Starting %s", next.SessionName),
		}, true
	case engine.TransitionPhaseChanged:
		if tr.To == engine.PhaseBreak {
			return Notice{
				Event:    model.AlarmWorkEnd,
				Title:    fmt.Sprintf("Pomodoro %d Complete", tr.CompletedIndex+1),
				Subtitle: "Break Starts",
			}, true
		}
		return Notice{
			Event:    model.AlarmBreakEnd,
			Title:    "Break Over",
			Subtitle: fmt.Sprintf("Start Pomodoro %d", next.PomodoroIndex+1),
		}, true
	case engine.TransitionBlockExited:
		return Notice{
			Event:    model.AlarmBlockEnd,
			Title:    "Block Complete",
			Subtitle: "Scheduled block has ended",
		}, true
	default:
		return Notice{}, false
	}
}
