package update

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"focusgrid/internal/alarm"
	"focusgrid/internal/dayrecord"
	"focusgrid/internal/engine"
	"focusgrid/internal/session"
)

type View string

const (
	ViewToday    View = "Today"
	ViewTomorrow View = "Tomorrow"
	ViewArchive  View = "Archive"
	ViewFocus    View = "Focus"
	ViewSettings View = "Settings"
	ViewDocs     View = "Docs"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today    string
	Tomorrow string
	Archive  string
	Focus    string
	Settings string
	Docs     string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// ManualSessionState is the in-memory countdown for a manually started
// block. Persistence lives in the session ledger; this is only the
// ticking view of it.
type ManualSessionState struct {
	BlockID   string
	Title     string
	Phase     engine.Phase
	Duration  time.Duration
	Remaining time.Duration
	Running   bool
}

type ReflectionEditorState struct {
	Active bool
	Field  string // worked, failed, improve
}

type Model struct {
	CurrentView     View
	SelectedBlockID string
	Store           *dayrecord.Store
	Ledger          *session.Ledger
	Dispatcher      *alarm.Dispatcher
	Repeater        *alarm.Repeater
	Current         *engine.PhaseState // nil while idle
	Manual          ManualSessionState
	HardModePending bool
	RestoredNote    string
	dayCompleteSent bool
	NoticeLog       []alarm.Notice
	Palette         CommandPaletteState
	HelpVisible     bool
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error
	clock           func() time.Time
	rolloverPoll    time.Duration
	recomputeEvery  time.Duration
	todayCursor     int
	tomorrowCursor  int
	archiveCursor   int
	settingsCursor  int
	// Bubble components used for rich TUI controls
	scheduleList  list.Model
	archiveTable  table.Model
	commandInput  textinput.Model
	reflectArea   textarea.Model
	focusProgress progress.Model
	docsViewport  viewport.Model
	reflection    ReflectionEditorState
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type PhaseTickMsg struct{}

type RolloverTickMsg struct{}

type RecomputeTickMsg struct{}

type AlarmNoticeMsg struct {
	Notice alarm.Notice
}

type SessionRestoredMsg struct {
	Restored session.Restored
	OK       bool
}

type AcknowledgeAlarmMsg struct{}

func NewModel(store *dayrecord.Store, ledger *session.Ledger) Model {
	return NewModelWithConfig(store, ledger, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(store *dayrecord.Store, ledger *session.Ledger, notifier alarm.Notifier, cfg RuntimeConfig) Model {
	repeatEvery := time.Duration(cfg.HardModeRepeatSeconds) * time.Second
	m := Model{
		CurrentView: ViewToday,
		Store:       store,
		Ledger:      ledger,
		Dispatcher:  alarm.NewDispatcher(pickNotifier(notifier, cfg)),
		Repeater:    alarm.NewRepeater(repeatEvery, cfg.AlarmBuffer),
		Keys: GlobalKeyMap{
			Today:    "1",
			Tomorrow: "2",
			Archive:  "3",
			Focus:    "4",
			Settings: "5",
			Docs:     "6",
			Help:     "?",
			Quit:     "q",
		},
		clock:          time.Now,
		rolloverPoll:   time.Duration(cfg.RolloverPollSeconds) * time.Second,
		recomputeEvery: time.Duration(cfg.RecomputeMinutes) * time.Minute,
		reflection:     ReflectionEditorState{Field: "worked"},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// WithClock swaps the time source. Test hook.
func (m Model) WithClock(clock func() time.Time) Model {
	if clock != nil {
		m.clock = clock
	}
	return m
}

func pickNotifier(notifier alarm.Notifier, cfg RuntimeConfig) alarm.Notifier {
	if notifier != nil {
		return notifier
	}
	if cfg.DesktopNotifications {
		return alarm.ExecNotifier{}
	}
	return alarm.NoopNotifier{}
}

func (m *Model) initBubbleComponents() {
	m.scheduleList = list.New(nil, list.NewDefaultDelegate(), 54, 10)
	m.scheduleList.SetShowHelp(false)
	m.scheduleList.SetShowTitle(false)
	m.scheduleList.SetShowStatusBar(false)

	m.archiveTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Done", Width: 9},
			{Title: "%", Width: 5},
			{Title: "Stage", Width: 14},
		}),
		table.WithHeight(8),
	)

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add | skip | distract | reflect | ack"
	m.commandInput.CharLimit = 160

	m.reflectArea = textarea.New()
	m.reflectArea.Placeholder = "write a line, enter saves"
	m.reflectArea.SetHeight(3)

	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.focusProgress.Width = 30

	m.docsViewport = viewport.New(54, 8)
}

func (m *Model) syncBubbleData() {
	if m.Store == nil {
		return
	}

	day := m.Store.Today()
	if m.CurrentView == ViewTomorrow {
		day = m.Store.Tomorrow()
	}
	items := make([]list.Item, 0, len(day.Blocks))
	for _, block := range day.Blocks {
		items = append(items, listItem{
			title:       block.Title,
			description: string(block.Category) + " " + blockWindow(block),
		})
	}
	m.scheduleList.SetItems(items)

	rows := make([]table.Row, 0)
	for _, rec := range m.Store.Archived() {
		rows = append(rows, table.Row{
			rec.Date,
			pomodoroFraction(rec.CompletedPomodoros, rec.TotalPomodoros),
			percentCell(rec.CompletionPercentage),
			rec.TreeStage.Label(),
		})
	}
	m.archiveTable.SetRows(rows)
}
