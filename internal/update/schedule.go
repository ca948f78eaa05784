package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/dayrecord"
	"focusgrid/internal/model"
	"focusgrid/internal/views"
)

func (m Model) handleScheduleKey(msg tea.KeyMsg) Model {
	target := dayrecord.TargetToday
	cursor := &m.todayCursor
	day := m.Store.Today()
	if m.CurrentView == ViewTomorrow {
		target = dayrecord.TargetTomorrow
		cursor = &m.tomorrowCursor
		day = m.Store.Tomorrow()
	}

	switch msg.String() {
	case "j", "down":
		if *cursor < len(day.Blocks)-1 {
			*cursor++
		}
	case "k", "up":
		if *cursor > 0 {
			*cursor--
		}
	case "x":
		if block, ok := blockAt(day, *cursor); ok {
			block.Completed = !block.Completed
			if _, err := m.Store.UpdateBlock(context.Background(), target, block); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m
			}
			m.Status = StatusBar{Text: fmt.Sprintf("toggled: %s", block.Title), IsError: false}
		}
	case "s":
		if m.CurrentView != ViewToday {
			return m
		}
		if _, err := m.Store.RecordSkippedSession(context.Background()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "session skipped", IsError: false}
	case "D":
		if block, ok := blockAt(day, *cursor); ok {
			if _, err := m.Store.RemoveBlock(context.Background(), target, block.ID); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m
			}
			if *cursor > 0 {
				*cursor--
			}
			m.Status = StatusBar{Text: fmt.Sprintf("removed: %s", block.Title), IsError: false}
		}
	case "R":
		if m.CurrentView == ViewToday {
			m.reflection.Active = true
			m.reflectArea.SetValue(m.reflectionFieldValue(m.reflection.Field))
			m.reflectArea.Focus()
		}
	}

	if block, ok := blockAt(day, *cursor); ok {
		m.SelectedBlockID = block.ID
	}
	return m
}

func blockAt(day model.DayRecord, cursor int) (model.Block, bool) {
	if cursor < 0 || cursor >= len(day.Blocks) {
		return model.Block{}, false
	}
	return day.Blocks[cursor], true
}

func (m Model) renderScheduleView(view View) string {
	day := m.Store.Today()
	cursor := m.todayCursor
	heading := "today"
	if view == ViewTomorrow {
		day = m.Store.Tomorrow()
		cursor = m.tomorrowCursor
		heading = "tomorrow"
	}

	items := make([]views.ScheduleItemData, 0, len(day.Blocks))
	for _, block := range day.Blocks {
		items = append(items, views.ScheduleItemData{
			ID:        block.ID,
			Title:     block.Title,
			Category:  string(block.Category),
			Window:    blockWindow(block),
			Pomodoro:  pomodoroSummary(block.Pomodoro),
			Completed: block.Completed,
			Current:   view == ViewToday && m.Current != nil && m.Current.BlockID == block.ID,
		})
	}

	selectedID := ""
	if block, ok := blockAt(day, cursor); ok {
		selectedID = block.ID
	}

	listView := ""
	if view == m.CurrentView {
		listView = m.scheduleList.View()
	}

	return views.RenderSchedulePanel(views.SchedulePanelData{
		Heading:    heading,
		Date:       day.Date,
		ListView:   listView,
		Items:      items,
		SelectedID: selectedID,
		Completed:  day.CompletedPomodoros,
		Total:      day.TotalPomodoros,
		Percent:    day.CompletionPercentage,
		StageLabel: day.TreeStage.Label(),
		Streak:     m.Store.Streak(),
	})
}

func (m Model) renderTreeView() string {
	settings := m.Store.Settings()
	day := m.Store.Today()
	return views.RenderTreePanel(views.TreePanelData{
		Enabled:    settings.FocusTreeEnabled,
		Percent:    day.CompletionPercentage,
		StageLabel: day.TreeStage.Label(),
		Streak:     m.Store.Streak(),
	})
}

func blockWindow(block model.Block) string {
	if !block.IsScheduled() {
		return ""
	}
	return block.StartTime + "-" + block.EndTime
}

func pomodoroSummary(p *model.Pomodoro) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%dx%dm/%dm", p.Cycles, p.WorkMinutes, p.BreakMinutes)
}
