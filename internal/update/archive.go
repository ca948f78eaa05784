package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/views"
)

func (m Model) handleArchiveKey(msg tea.KeyMsg) Model {
	records := m.Store.Archived()
	switch msg.String() {
	case "j", "down":
		if m.archiveCursor < len(records)-1 {
			m.archiveCursor++
			m.archiveTable.MoveDown(1)
		}
	case "k", "up":
		if m.archiveCursor > 0 {
			m.archiveCursor--
			m.archiveTable.MoveUp(1)
		}
	}
	return m
}

func (m Model) renderArchiveView() string {
	records := m.Store.Archived()
	rows := make([]views.ArchiveRowData, 0, len(records))
	for _, rec := range records {
		rows = append(rows, views.ArchiveRowData{
			Date:       rec.Date,
			Percent:    rec.CompletionPercentage,
			StageLabel: rec.TreeStage.Label(),
			Pomodoros:  pomodoroFraction(rec.CompletedPomodoros, rec.TotalPomodoros),
			Skipped:    rec.SkippedSessions,
		})
	}
	var selected *views.ArchiveRowData
	if m.archiveCursor >= 0 && m.archiveCursor < len(rows) {
		selected = &rows[m.archiveCursor]
	}
	return views.RenderArchivePanel(views.ArchivePanelData{
		TableView: m.archiveTable.View(),
		Rows:      rows,
		Selected:  selected,
		Streak:    m.Store.Streak(),
	})
}

func pomodoroFraction(completed, total int) string {
	return fmt.Sprintf("%d/%d", completed, total)
}

func percentCell(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}
