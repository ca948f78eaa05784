package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/alarm"
	"focusgrid/internal/engine"
	"focusgrid/internal/model"
	"focusgrid/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Manual.Running {
			return m.stopManualSession("manual session paused"), nil
		}
		return m.startManualSession(), nil
	case "r":
		m = m.stopManualSession("manual session reset")
		m.Manual.Remaining = m.Manual.Duration
		return m, nil
	}
	return m, nil
}

// startManualSession begins a countdown on the selected manual block, or
// resumes the paused one. The start instant and duration go to the ledger
// so a process restart can pick the countdown back up.
func (m Model) startManualSession() Model {
	if m.Manual.BlockID == "" || m.Manual.Remaining <= 0 {
		block, ok := m.selectedManualBlock()
		if !ok {
			m.Status = StatusBar{Text: "select a manual block on the Today view first", IsError: true}
			return m
		}
		m.Manual = ManualSessionState{
			BlockID:   block.ID,
			Title:     block.Title,
			Phase:     engine.PhaseWork,
			Duration:  manualDuration(block),
			Remaining: manualDuration(block),
		}
	}
	m.Manual.Running = true
	if m.Ledger != nil {
		if err := m.Ledger.Start(context.Background(), m.Manual.BlockID, m.Manual.Remaining, m.Manual.Phase, m.clock()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Status = StatusBar{Text: fmt.Sprintf("manual session running: %s", m.Manual.Title), IsError: false}
	return m
}

func (m Model) stopManualSession(statusText string) Model {
	if !m.Manual.Running {
		return m
	}
	m.Manual.Running = false
	if m.Ledger != nil {
		if err := m.Ledger.Stop(context.Background()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
	}
	m.Status = StatusBar{Text: statusText, IsError: false}
	return m
}

// tickManualSession advances the countdown by one second. Completion
// counts a pomodoro, clears the ledger entry, and in hard mode arms the
// re-alert until acknowledged.
func (m Model) tickManualSession() Model {
	if !m.Manual.Running {
		return m
	}
	if m.Manual.Remaining > 0 {
		m.Manual.Remaining -= time.Second
	}
	if m.Manual.Remaining > 0 {
		return m
	}

	m.Manual.Running = false
	m.Manual.Remaining = 0
	if m.Ledger != nil {
		if err := m.Ledger.Stop(context.Background()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
	}
	if _, err := m.Store.RecordCompletedPomodoro(context.Background(), int(m.Manual.Duration.Minutes())); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m = m.deliverNotice(alarm.Notice{
		Event:    model.AlarmWorkEnd,
		Title:    fmt.Sprintf("%s Complete", m.Manual.Title),
		Subtitle: "Manual session finished",
	})
	return m.maybeAnnounceDayComplete()
}

func (m Model) selectedManualBlock() (model.Block, bool) {
	day := m.Store.Today()
	if block, ok := day.Block(m.SelectedBlockID); ok && !block.IsScheduled() {
		return block, true
	}
	for _, block := range day.Blocks {
		if !block.IsScheduled() && !block.Completed {
			return block, true
		}
	}
	return model.Block{}, false
}

func manualDuration(block model.Block) time.Duration {
	minutes := block.DurationMinutes
	if block.Pomodoro != nil {
		minutes = block.Pomodoro.WorkMinutes
	}
	if minutes <= 0 {
		minutes = 50
	}
	return time.Duration(minutes) * time.Minute
}

func (m Model) renderFocusView() string {
	day := m.Store.Today()
	data := views.FocusPanelData{
		HardModePending: m.HardModePending,
		RestoredNote:    m.RestoredNote,
		CompletedToday:  day.CompletedPomodoros,
		TotalToday:      day.TotalPomodoros,
	}
	if m.Current != nil {
		if block, ok := day.Block(m.Current.BlockID); ok {
			data.BlockTitle = block.Title
		}
		data.SessionName = m.Current.SessionName
		data.NextSessionName = m.Current.NextSessionName
		data.Phase = string(m.Current.Phase)
		data.Timer = formatDuration(int(m.Current.TimeLeft.Seconds()))
		data.ProgressPct = int(m.Current.ProgressPercent)
		data.ProgressView = m.focusProgress.ViewAs(m.Current.ProgressPercent / 100)
	}
	if m.Manual.BlockID != "" {
		data.ManualRunning = m.Manual.Running
		data.ManualTimer = formatDuration(int(m.Manual.Remaining.Seconds()))
	}
	return views.RenderFocusPanel(data)
}

func (m Model) renderNoticeLogView() string {
	if len(m.NoticeLog) == 0 {
		return ""
	}
	out := "alarm-log:\n"
	start := 0
	if len(m.NoticeLog) > 5 {
		start = len(m.NoticeLog) - 5
	}
	for _, notice := range m.NoticeLog[start:] {
		out += fmt.Sprintf("- [%s] %s\n", notice.Event, notice.Title)
	}
	return out
}
