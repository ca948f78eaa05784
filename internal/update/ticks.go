package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/alarm"
	"focusgrid/internal/engine"
	"focusgrid/internal/model"
	"focusgrid/internal/session"
)

type storeReader interface {
	Today() model.DayRecord
}

// onPhaseTick re-resolves the scheduled phase from the wall clock and
// reacts to whatever transition fell out of the comparison. The resolver
// output is recomputed whole each second, so a suspended laptop catches
// up on the first tick after resume.
func (m Model) onPhaseTick() (tea.Model, tea.Cmd) {
	if m.Store == nil {
		return m, phaseTickCmd()
	}

	now := m.clock()
	today := m.Store.Today()
	resolved, live := engine.Resolve(today.Blocks, now)
	var next *engine.PhaseState
	if live {
		next = &resolved
	}

	tr := engine.Detect(m.Current, next)
	m = m.applyTransition(tr, m.Current, next)
	m.Current = next

	m = m.tickManualSession()
	return m, phaseTickCmd()
}

func (m Model) applyTransition(tr engine.Transition, prev, next *engine.PhaseState) Model {
	ctx := context.Background()

	// Counters move on the transition itself, independent of whether the
	// alarm for it is enabled or delivered.
	switch tr.Kind {
	case engine.TransitionPhaseChanged:
		if tr.To == engine.PhaseBreak && prev != nil {
			if _, err := m.Store.RecordCompletedPomodoro(ctx, int(prev.PhaseDuration.Minutes())); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
		if tr.To == engine.PhaseWork && prev != nil {
			if _, err := m.Store.RecordBreakMinutes(ctx, int(prev.PhaseDuration.Minutes())); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	case engine.TransitionBlockExited:
		// The final work segment of a pomodoro block has no trailing break,
		// so its completion lands here. Blocks without a pomodoro structure
		// (Fitness, Prayer, plain breaks) also resolve as a single work
		// segment, but they plan zero pomodoros and must not count one.
		if prev != nil && prev.Phase == engine.PhaseWork && m.blockHasCycles(prev.BlockID) {
			if _, err := m.Store.RecordCompletedPomodoro(ctx, int(prev.PhaseDuration.Minutes())); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	}

	if tr.Kind == engine.TransitionBlockEntered {
		m = m.commandeerFocusForBlock()
	}

	notice, ok := alarm.NoticeFor(tr, prev, next)
	if !ok {
		return m.maybeAnnounceDayComplete()
	}
	return m.deliverNotice(notice).maybeAnnounceDayComplete()
}

func (m Model) blockHasCycles(id string) bool {
	block, ok := m.Store.Today().Block(id)
	return ok && block.Pomodoro != nil
}

// commandeerFocusForBlock is hard mode's force-run: entering a scheduled
// block takes over from any paused manual session so the wall-clock phase
// is what runs.
func (m Model) commandeerFocusForBlock() Model {
	if !m.Store.Settings().HardMode {
		return m
	}
	if m.Manual.BlockID == "" || m.Manual.Running {
		return m
	}
	m.Manual = ManualSessionState{}
	if m.Ledger != nil {
		if err := m.Ledger.Stop(context.Background()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Status = StatusBar{Text: "hard mode: scheduled block takes over", IsError: false}
	return m
}

// maybeAnnounceDayComplete fires the dayComplete alarm once per day when
// every planned pomodoro has been completed.
func (m Model) maybeAnnounceDayComplete() Model {
	if m.dayCompleteSent {
		return m
	}
	day := m.Store.Today()
	if day.TotalPomodoros == 0 || day.CompletedPomodoros < day.TotalPomodoros {
		return m
	}
	m.dayCompleteSent = true
	return m.deliverNotice(alarm.Notice{
		Event:    model.AlarmDayComplete,
		Title:    "Day Complete!",
		Subtitle: "Outstanding commitment. Your tree has grown.",
	})
}

func (m Model) deliverNotice(notice alarm.Notice) Model {
	settings := m.Store.Settings()
	delivered, err := m.Dispatcher.Dispatch(settings, notice)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else if delivered {
		m.Status = StatusBar{Text: notice.Title, IsError: false}
	}

	m.NoticeLog = append(m.NoticeLog, notice)
	if len(m.NoticeLog) > 20 {
		m.NoticeLog = m.NoticeLog[len(m.NoticeLog)-20:]
	}

	if settings.HardMode && notice.Event.IsEndEvent() && m.Repeater != nil {
		m.Repeater.Arm(notice)
		m.HardModePending = true
	}
	return m
}

// onRepeatedNotice handles a hard-mode re-alert surfaced by the repeater.
// It goes straight to the notifier: the gate already passed when the
// notice was armed.
func (m Model) onRepeatedNotice(notice alarm.Notice) Model {
	if m.Store == nil {
		return m
	}
	if _, err := m.Dispatcher.Dispatch(m.Store.Settings(), notice); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("still waiting: %s", notice.Title), IsError: false}
	}
	m.HardModePending = m.Repeater != nil && m.Repeater.Pending()
	return m
}

func (m Model) acknowledgeAlarm() Model {
	if m.Repeater != nil {
		m.Repeater.Acknowledge()
	}
	if m.HardModePending {
		m.Status = StatusBar{Text: "alarm acknowledged", IsError: false}
	}
	m.HardModePending = false
	return m
}

func (m Model) onRolloverTick() (tea.Model, tea.Cmd) {
	if m.Store == nil {
		return m, rolloverTickCmd(m.rolloverPoll)
	}
	rolled, err := m.Store.Rollover(context.Background(), m.clock())
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("rollover failed: %v", err), IsError: true}
	} else if rolled {
		m.Current = nil
		m.todayCursor = 0
		m.tomorrowCursor = 0
		m.dayCompleteSent = false
		m.Status = StatusBar{Text: fmt.Sprintf("new day: %s", m.Store.Today().Date), IsError: false}
	}
	return m, rolloverTickCmd(m.rolloverPoll)
}

func (m Model) onRecomputeTick() (tea.Model, tea.Cmd) {
	if m.Store == nil {
		return m, recomputeTickCmd(m.recomputeEvery)
	}
	changed, err := m.Store.RecalculateProgress(context.Background())
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("recompute failed: %v", err), IsError: true}
	} else if changed {
		m.Status = StatusBar{Text: "progress recomputed", IsError: false}
	}
	return m, recomputeTickCmd(m.recomputeEvery)
}

func (m Model) seedRestoredSession(restored session.Restored) Model {
	title := restored.BlockID
	if block, ok := m.Store.Today().Block(restored.BlockID); ok {
		title = block.Title
	}
	m.Manual = ManualSessionState{
		BlockID:   restored.BlockID,
		Title:     title,
		Phase:     restored.Phase,
		Duration:  restored.Remaining,
		Remaining: restored.Remaining,
		Running:   true,
	}
	m.RestoredNote = fmt.Sprintf("%s resumed with %s left", title, formatDuration(int(restored.Remaining.Seconds())))
	m.Status = StatusBar{Text: m.RestoredNote, IsError: false}
	return m
}
