package engine

type TransitionKind string

const (
	TransitionNone         TransitionKind = "none"
	TransitionBlockEntered TransitionKind = "block_entered"
	TransitionPhaseChanged TransitionKind = "phase_changed"
	TransitionBlockExited  TransitionKind = "block_exited"
)

// Transition is the net change between two consecutive resolved states.
type Transition struct {
	Kind    TransitionKind
	BlockID string
	From    Phase
	To      Phase
	// CompletedIndex is set on a work-to-break change and names the
	// pomodoro that just finished. It is taken from the outgoing state:
	// the finished work segment belongs to the index that was running,
	// not to the one the break reports.
	CompletedIndex int
}

// Detect compares the previous tick's resolved state with the current one
// and returns at most one transition. There is no queue: ticks missed
// during a suspend collapse into the single net transition between the
// last-observed and current state, which can under-count but never
// double-counts.
func Detect(prev, next *PhaseState) Transition {
	switch {
	case next != nil && prev == nil:
		return Transition{Kind: TransitionBlockEntered, BlockID: next.BlockID, To: next.Phase}
	case next != nil && prev != nil && prev.BlockID != next.BlockID:
		// Block change dominates even when the phase differs too.
		return Transition{Kind: TransitionBlockEntered, BlockID: next.BlockID, To: next.Phase}
	case next != nil && prev != nil && prev.Phase != next.Phase:
		t := Transition{
			Kind:    TransitionPhaseChanged,
			BlockID: next.BlockID,
			From:    prev.Phase,
			To:      next.Phase,
		}
		if prev.Phase == PhaseWork && next.Phase == PhaseBreak {
			t.CompletedIndex = prev.PomodoroIndex
		}
		return t
	case next == nil && prev != nil:
		return Transition{Kind: TransitionBlockExited, BlockID: prev.BlockID, From: prev.Phase}
	default:
		return Transition{Kind: TransitionNone}
	}
}
