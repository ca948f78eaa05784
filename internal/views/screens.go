package views

import (
	"fmt"
	"strings"

	"focusgrid/internal/model"
)

type ScheduleItemData struct {
	ID        string
	Title     string
	Category  string
	Window    string
	Pomodoro  string
	Completed bool
	Current   bool
}

type SchedulePanelData struct {
	Heading    string
	Date       string
	ListView   string
	Items      []ScheduleItemData
	SelectedID string
	Completed  int
	Total      int
	Percent    int
	StageLabel string
	Streak     int
}

type FocusPanelData struct {
	BlockTitle      string
	SessionName     string
	NextSessionName string
	Phase           string
	Timer           string
	ProgressView    string
	ProgressPct     int
	ManualRunning   bool
	ManualTimer     string
	RestoredNote    string
	HardModePending bool
	CompletedToday  int
	TotalToday      int
}

type ArchiveRowData struct {
	Date       string
	Percent    int
	StageLabel string
	Pomodoros  string
	Skipped    int
}

type ArchivePanelData struct {
	TableView string
	Rows      []ArchiveRowData
	Selected  *ArchiveRowData
	Streak    int
}

type TreePanelData struct {
	Enabled    bool
	Percent    int
	StageLabel string
	Streak     int
}

type AlarmRowData struct {
	Event   string
	Enabled bool
	Tone    string
}

type SettingsPanelData struct {
	HardMode    bool
	RamadanMode bool
	FocusTree   bool
	Vibration   bool
	Volume      float64
	Alarms      []AlarmRowData
	Cursor      int
}

type ReflectionEditorData struct {
	Active     bool
	Field      string
	EditorView string
	Worked     string
	Failed     string
	Improve    string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	DocsView    string
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s):\n", data.Heading, data.Date))
	b.WriteString("actions: [j/k]move [x]done [s]skip [D]remove [R]reflect\n")
	if data.ListView != "" {
		b.WriteString(data.ListView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("  (no blocks planned)\n")
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		marker := "[ ]"
		if item.Completed {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, marker, item.Title)
		if item.Window != "" {
			line += fmt.Sprintf(" @%s", item.Window)
		}
		if item.Pomodoro != "" {
			line += fmt.Sprintf(" {%s}", item.Pomodoro)
		}
		line += fmt.Sprintf(" #%s", item.Category)
		if item.Current {
			line += " <- now"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\npomodoros: %d/%d (%d%%) | stage: %s | streak: %d\n",
		data.Completed, data.Total, data.Percent, StageBadge(data.StageLabel), data.Streak))
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.BlockTitle != "" {
		b.WriteString(fmt.Sprintf("block: %s\n", data.BlockTitle))
		b.WriteString(fmt.Sprintf("session: %s\n", data.SessionName))
		b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
		b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
		b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
		if data.NextSessionName != "" {
			b.WriteString(fmt.Sprintf("next: %s\n", data.NextSessionName))
		}
	} else {
		b.WriteString("block: (idle, nothing scheduled right now)\n")
	}
	if data.ManualRunning {
		b.WriteString(fmt.Sprintf("manual timer: %s running\n", data.ManualTimer))
	}
	if data.RestoredNote != "" {
		b.WriteString(fmt.Sprintf("restored: %s\n", data.RestoredNote))
	}
	b.WriteString(fmt.Sprintf("pomodoros today: %d/%d\n", data.CompletedToday, data.TotalToday))
	b.WriteString("actions: [space]start/stop manual [r]reset [a]acknowledge\n")
	if data.HardModePending {
		b.WriteString("prompt: alarm waiting, press [a] to acknowledge")
	}
	return strings.TrimSpace(b.String())
}

func RenderArchivePanel(data ArchivePanelData) string {
	var b strings.Builder
	b.WriteString("archive:\n")
	b.WriteString(fmt.Sprintf("current streak: %d day(s)\n", data.Streak))
	b.WriteString("actions: [j/k]move\n")
	if data.TableView != "" {
		b.WriteString(data.TableView + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no archived days yet)")
		return strings.TrimSpace(b.String())
	}
	if data.Selected != nil {
		b.WriteString("\nday-detail:\n")
		b.WriteString(fmt.Sprintf("date: %s\n", data.Selected.Date))
		b.WriteString(fmt.Sprintf("completion: %d%% (%s)\n", data.Selected.Percent, StageBadge(data.Selected.StageLabel)))
		b.WriteString(fmt.Sprintf("pomodoros: %s | skipped: %d\n", data.Selected.Pomodoros, data.Selected.Skipped))
	}
	return strings.TrimSpace(b.String())
}

func RenderTreePanel(data TreePanelData) string {
	if !data.Enabled {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nfocus-tree:\n")
	b.WriteString(treeArt(data.StageLabel))
	b.WriteString(fmt.Sprintf("\n%s at %d%% | streak %d\n", StageBadge(data.StageLabel), data.Percent, data.Streak))
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [h]hard [m]ramadan [t]tree [v]vibration [j/k]+[enter] alarms\n")
	b.WriteString(fmt.Sprintf("hard mode: %s\n", onOff(data.HardMode)))
	b.WriteString(fmt.Sprintf("ramadan mode: %s\n", onOff(data.RamadanMode)))
	b.WriteString(fmt.Sprintf("focus tree: %s\n", onOff(data.FocusTree)))
	b.WriteString(fmt.Sprintf("vibration: %s\n", onOff(data.Vibration)))
	b.WriteString(fmt.Sprintf("volume: %.0f%%\n", data.Volume*100))
	b.WriteString("alarms:\n")
	for i, row := range data.Alarms {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s (%s)\n", cursor, onOff(row.Enabled), row.Event, row.Tone))
	}
	return strings.TrimSpace(b.String())
}

func RenderReflectionEditor(data ReflectionEditorData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nreflection-editor:\n")
	b.WriteString("keys: [tab] field [enter] save [esc] close\n")
	b.WriteString(fmt.Sprintf("field: %s\n", data.Field))
	b.WriteString(data.EditorView + "\n")
	b.WriteString(fmt.Sprintf("worked: %s\n", data.Worked))
	b.WriteString(fmt.Sprintf("failed: %s\n", data.Failed))
	b.WriteString(fmt.Sprintf("improve: %s\n", data.Improve))
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(fmt.Sprintf("%s view:\n", strings.ToLower(data.CurrentView)))
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.DocsView != "" {
		b.WriteString("\n\n" + data.DocsView)
	}
	return strings.TrimSpace(b.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func treeArt(stage string) string {
	switch stage {
	case model.StageLabelSprout:
		return "  ,\n .|.\n"
	case model.StageLabelYoung:
		return "  ^\n /|\\\n  |\n"
	case model.StageLabelStrong:
		return " /^\\\n//|\\\\\n  |\n"
	case model.StageLabelFull:
		return " @@@\n@@|@@\n  |\n"
	default:
		return "  .\n"
	}
}
