package alarm

import (
	"errors"
	"testing"
	"time"

	"focusgrid/internal/engine"
	"focusgrid/internal/model"
)

func TestNoticeForBlockEnteredFromIdle(t *testing.T) {
	next := &engine.PhaseState{BlockID: "b1", Phase: engine.PhaseWork, SessionName: "P1 — Work"}
	tr := engine.Detect(nil, next)
	notice, ok := NoticeFor(tr, nil, next)
	if !ok {
		t.Fatal("expected a notice")
	}
	if notice.Event != model.AlarmBlockStart {
		t.Fatalf("event = %s", notice.Event)
	}
	if notice.Title != "Marathon Block Started" {
		t.Fatalf("title = %q", notice.Title)
	}
}

func TestNoticeForWorkEndUsesOutgoingIndex(t *testing.T) {
	prev := &engine.PhaseState{BlockID: "b1", Phase: engine.PhaseWork, PomodoroIndex: 2}
	next := &engine.PhaseState{BlockID: "b1", Phase: engine.PhaseBreak, PomodoroIndex: 2}
	tr := engine.Detect(prev, next)
	notice, ok := NoticeFor(tr, prev, next)
	if !ok || notice.Event != model.AlarmWorkEnd {
		t.Fatalf("unexpected notice: %+v ok=%v", notice, ok)
	}
	if notice.Title != "Pomodoro 3 Complete" {
		t.Fatalf("title = %q", notice.Title)
	}
}

func TestNoticeForBreakEnd(t *testing.T) {
	prev := &engine.PhaseState{BlockID: "b1", Phase: engine.PhaseBreak, PomodoroIndex: 0}
	next := &engine.PhaseState{BlockID: "b1", Phase: engine.PhaseWork, PomodoroIndex: 1}
	tr := engine.Detect(prev, next)
	notice, ok := NoticeFor(tr, prev, next)
	if !ok || notice.Event != model.AlarmBreakEnd {
		t.Fatalf("unexpected notice: %+v ok=%v", notice, ok)
	}
	if notice.Subtitle != "Start Pomodoro 2" {
		t.Fatalf("subtitle = %q", notice.Subtitle)
	}
}

func TestNoticeForNoOpTick(t *testing.T) {
	state := &engine.PhaseState{BlockID: "b1", Phase: engine.PhaseWork}
	tr := engine.Detect(state, state)
	if _, ok := NoticeFor(tr, state, state); ok {
		t.Fatal("steady state must not produce a notice")
	}
}

type recordingNotifier struct {
	sent []Notice
	err  error
}

func (r *recordingNotifier) Send(n Notice) error {
	r.sent = append(r.sent, n)
	return r.err
}

func TestDispatchRespectsDisabledAlarm(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := NewDispatcher(notifier)

	settings := model.DefaultSettings()
	settings.Alarms[model.AlarmWorkEnd] = model.AlarmConfig{Enabled: false, Tone: model.ToneUrgent}

	delivered, err := dispatcher.Dispatch(settings, Notice{Event: model.AlarmWorkEnd, Title: "x"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if delivered || len(notifier.sent) != 0 {
		t.Fatal("disabled alarm must not be delivered")
	}

	delivered, err = dispatcher.Dispatch(settings, Notice{Event: model.AlarmBreakEnd, Title: "y"})
	if err != nil || !delivered {
		t.Fatalf("enabled alarm should deliver: delivered=%v err=%v", delivered, err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d", len(notifier.sent))
	}
}

func TestDispatchSurfacesNotifierError(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("no display")}
	dispatcher := NewDispatcher(notifier)
	delivered, err := dispatcher.Dispatch(model.DefaultSettings(), Notice{Event: model.AlarmBlockStart})
	if !delivered || err == nil {
		t.Fatalf("expected delivery attempt with error, got delivered=%v err=%v", delivered, err)
	}
}

func TestRepeaterRepeatsUntilAcknowledged(t *testing.T) {
	repeater := NewRepeater(20*time.Millisecond, 8)
	repeater.Start()
	defer repeater.Stop()

	repeater.Arm(Notice{Event: model.AlarmWorkEnd, Title: "Session Waiting"})

	first := waitNotice(t, repeater.C(), time.Second)
	second := waitNotice(t, repeater.C(), time.Second)
	if first.Title != "Session Waiting" || second.Title != "Session Waiting" {
		t.Fatalf("unexpected notices: %+v / %+v", first, second)
	}
	if !repeater.Pending() {
		t.Fatal("expected pending alert before acknowledgement")
	}

	repeater.Acknowledge()
	if repeater.Pending() {
		t.Fatal("acknowledge must clear the pending alert")
	}
	// Idempotent.
	repeater.Acknowledge()

	drainNotices(repeater.C())
	select {
	case n, open := <-repeater.C():
		if open {
			t.Fatalf("unexpected notice after acknowledge: %+v", n)
		}
	case <-time.After(80 * time.Millisecond):
	}
}

func TestRepeaterIgnoresNonEndEvents(t *testing.T) {
	repeater := NewRepeater(10*time.Millisecond, 4)
	repeater.Start()
	defer repeater.Stop()

	repeater.Arm(Notice{Event: model.AlarmBlockStart, Title: "start"})
	if repeater.Pending() {
		t.Fatal("start events must not arm the repeater")
	}
	select {
	case n := <-repeater.C():
		t.Fatalf("unexpected notice: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func waitNotice(t *testing.T, ch <-chan Notice, timeout time.Duration) Notice {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for notice")
		return Notice{}
	}
}

func drainNotices(ch <-chan Notice) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
