package engine

import "testing"

func TestDetectNoOpWhenBothIdle(t *testing.T) {
	tr := Detect(nil, nil)
	if tr.Kind != TransitionNone {
		t.Fatalf("kind = %s, want none", tr.Kind)
	}
}

func TestDetectBlockEnteredFromIdle(t *testing.T) {
	next := &PhaseState{BlockID: "b1", Phase: PhaseWork}
	tr := Detect(nil, next)
	if tr.Kind != TransitionBlockEntered || tr.BlockID != "b1" {
		t.Fatalf("unexpected transition: %+v", tr)
	}
}

func TestDetectBlockChangeDominatesPhaseChange(t *testing.T) {
	prev := &PhaseState{BlockID: "b1", Phase: PhaseWork, PomodoroIndex: 2}
	next := &PhaseState{BlockID: "b2", Phase: PhaseBreak}
	tr := Detect(prev, next)
	if tr.Kind != TransitionBlockEntered {
		t.Fatalf("kind = %s, want block_entered when both id and phase differ", tr.Kind)
	}
	if tr.BlockID != "b2" {
		t.Fatalf("block id = %s, want b2", tr.BlockID)
	}
}

func TestDetectWorkToBreakCarriesOutgoingIndex(t *testing.T) {
	prev := &PhaseState{BlockID: "b1", Phase: PhaseWork, PomodoroIndex: 1}
	next := &PhaseState{BlockID: "b1", Phase: PhaseBreak, PomodoroIndex: 1}
	tr := Detect(prev, next)
	if tr.Kind != TransitionPhaseChanged {
		t.Fatalf("kind = %s, want phase_changed", tr.Kind)
	}
	if tr.From != PhaseWork || tr.To != PhaseBreak {
		t.Fatalf("from/to = %s/%s", tr.From, tr.To)
	}
	if tr.CompletedIndex != 1 {
		t.Fatalf("completed index = %d, want the outgoing index 1", tr.CompletedIndex)
	}
}

func TestDetectBreakToWork(t *testing.T) {
	prev := &PhaseState{BlockID: "b1", Phase: PhaseBreak, PomodoroIndex: 0}
	next := &PhaseState{BlockID: "b1", Phase: PhaseWork, PomodoroIndex: 1}
	tr := Detect(prev, next)
	if tr.Kind != TransitionPhaseChanged || tr.To != PhaseWork {
		t.Fatalf("unexpected transition: %+v", tr)
	}
}

func TestDetectBlockExited(t *testing.T) {
	prev := &PhaseState{BlockID: "b1", Phase: PhaseBreak}
	tr := Detect(prev, nil)
	if tr.Kind != TransitionBlockExited || tr.BlockID != "b1" {
		t.Fatalf("unexpected transition: %+v", tr)
	}
}

func TestDetectStablePhaseIsNoOp(t *testing.T) {
	prev := &PhaseState{BlockID: "b1", Phase: PhaseWork, PomodoroIndex: 0}
	next := &PhaseState{BlockID: "b1", Phase: PhaseWork, PomodoroIndex: 0}
	tr := Detect(prev, next)
	if tr.Kind != TransitionNone {
		t.Fatalf("kind = %s, want none", tr.Kind)
	}
}
