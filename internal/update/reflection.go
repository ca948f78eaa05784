package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/model"
	"focusgrid/internal/views"
)

var reflectionFields = []string{"worked", "failed", "improve"}

func (m Model) handleReflectionKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.reflection.Active = false
		m.reflectArea.Blur()
		m.Status = StatusBar{Text: "reflection editor closed", IsError: false}
	case "tab":
		m.reflection.Field = nextReflectionField(m.reflection.Field)
		m.reflectArea.SetValue(m.reflectionFieldValue(m.reflection.Field))
	case "enter":
		text := m.reflectArea.Value()
		field := m.reflection.Field
		if _, err := m.Store.UpdateToday(context.Background(), func(day *model.DayRecord) {
			setReflectionField(&day.Reflection, field, text)
		}); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "reflection saved: " + field, IsError: false}
	default:
		if msg.Type == tea.KeyRunes {
			m.reflectArea.SetValue(m.reflectArea.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.reflectArea, cmd = m.reflectArea.Update(msg)
		_ = cmd
	}
	return m
}

func nextReflectionField(field string) string {
	for i, name := range reflectionFields {
		if name == field {
			return reflectionFields[(i+1)%len(reflectionFields)]
		}
	}
	return reflectionFields[0]
}

func (m Model) reflectionFieldValue(field string) string {
	reflection := m.Store.Today().Reflection
	switch field {
	case "failed":
		return reflection.Failed
	case "improve":
		return reflection.Improvement
	default:
		return reflection.Worked
	}
}

func setReflectionField(r *model.Reflection, field, text string) {
	switch field {
	case "failed":
		r.Failed = text
	case "improve":
		r.Improvement = text
	default:
		r.Worked = text
	}
}

func (m Model) renderReflectionEditorIfVisible() string {
	if !m.reflection.Active {
		return ""
	}
	reflection := m.Store.Today().Reflection
	return views.RenderReflectionEditor(views.ReflectionEditorData{
		Active:     true,
		Field:      m.reflection.Field,
		EditorView: m.reflectArea.View(),
		Worked:     reflection.Worked,
		Failed:     reflection.Failed,
		Improve:    reflection.Improvement,
	})
}
