package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/alarm"
	"focusgrid/internal/session"
	"focusgrid/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{phaseTickCmd()}
	if m.rolloverPoll > 0 {
		cmds = append(cmds, rolloverTickCmd(m.rolloverPoll))
	}
	if m.recomputeEvery > 0 {
		cmds = append(cmds, recomputeTickCmd(m.recomputeEvery))
	}
	if m.Repeater != nil {
		m.Repeater.Start()
		cmds = append(cmds, waitForNoticeCmd(m.Repeater.C()))
	}
	if m.Ledger != nil && m.Store != nil {
		cmds = append(cmds, restoreSessionCmd(m.Ledger, m.Store, m.clock))
	}
	return tea.Batch(cmds...)
}

// Update routes the message and refreshes the bubble components from the
// store on the model that is actually returned. A deferred sync would run
// against the local copy after the return value is captured and be lost.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	if typed, ok := next.(Model); ok {
		typed.syncBubbleData()
		return typed, cmd
	}
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		if m.reflection.Active {
			next := m.handleReflectionKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			return m, nil
		case m.Keys.Tomorrow:
			m.CurrentView = ViewTomorrow
			return m, nil
		case m.Keys.Archive:
			m.CurrentView = ViewArchive
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Docs:
			m.CurrentView = ViewDocs
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "a":
			return m.acknowledgeAlarm(), nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			if m.Repeater != nil {
				m.Repeater.Stop()
			}
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewToday, ViewTomorrow:
			return m.handleScheduleKey(typed), nil
		case ViewArchive:
			return m.handleArchiveKey(typed), nil
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewSettings:
			return m.handleSettingsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case PhaseTickMsg:
		return m.onPhaseTick()
	case RolloverTickMsg:
		return m.onRolloverTick()
	case RecomputeTickMsg:
		return m.onRecomputeTick()
	case AlarmNoticeMsg:
		m = m.onRepeatedNotice(typed.Notice)
		if m.Repeater != nil {
			return m, waitForNoticeCmd(m.Repeater.C())
		}
		return m, nil
	case SessionRestoredMsg:
		if typed.OK {
			m = m.seedRestoredSession(typed.Restored)
		}
		return m, nil
	case AcknowledgeAlarmMsg:
		return m.acknowledgeAlarm(), nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderScheduleView(ViewToday)
		rightPane = m.renderTreeView() + m.renderReflectionEditorIfVisible() + m.renderHelpIfVisible()
	case ViewTomorrow:
		leftPane = m.renderScheduleView(ViewTomorrow)
		rightPane = m.renderHelpIfVisible()
	case ViewArchive:
		leftPane = m.renderArchiveView()
		rightPane = m.renderTreeView() + m.renderHelpIfVisible()
	case ViewFocus:
		leftPane = m.renderFocusView()
		rightPane = m.renderNoticeLogView() + m.renderHelpIfVisible()
	case ViewSettings:
		leftPane = m.renderSettingsView()
		rightPane = m.renderHelpIfVisible()
	case ViewDocs:
		leftPane = m.renderDocsView()
		rightPane = m.renderHelpIfVisible()
	}
	if m.Palette.Active {
		rightPane = views.RenderCommandPalette(true, m.commandInput.Value()) + "\n" + rightPane
	}

	alert := ""
	if m.HardModePending {
		alert = "HARD MODE: alarm unacknowledged, press [a]"
	}

	header := fmt.Sprintf("focusgrid | view: %s | %s", m.CurrentView, m.headerClock())
	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   strings.TrimSpace(leftPane),
		RightPane:  strings.TrimSpace(rightPane),
		StatusLine: status,
		AlertLine:  alert,
		Footer: fmt.Sprintf("keys: %s today | %s tomorrow | %s archive | %s focus | %s settings | %s docs | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Tomorrow, m.Keys.Archive, m.Keys.Focus, m.Keys.Settings, m.Keys.Docs, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) headerClock() string {
	now := m.clock()
	line := now.Format("Mon 15:04:05")
	if m.Current != nil {
		line += " | " + m.Current.SessionName
	}
	return line
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewTomorrow, ViewArchive, ViewFocus, ViewSettings, ViewDocs:
		return true
	default:
		return false
	}
}

func phaseTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return PhaseTickMsg{} })
}

func rolloverTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return RolloverTickMsg{} })
}

func recomputeTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return RecomputeTickMsg{} })
}

func waitForNoticeCmd(ch <-chan alarm.Notice) tea.Cmd {
	return func() tea.Msg {
		notice, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmNoticeMsg{Notice: notice}
	}
}

func restoreSessionCmd(ledger *session.Ledger, store storeReader, clock func() time.Time) tea.Cmd {
	return func() tea.Msg {
		restored, ok := ledger.Restore(context.Background(), clock(), store.Today().Blocks)
		return SessionRestoredMsg{Restored: restored, OK: ok}
	}
}
