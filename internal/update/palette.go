package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"focusgrid/internal/commands"
	"focusgrid/internal/dayrecord"
	"focusgrid/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			category := model.CategoryStudy
			if a.Category != "" {
				parsed, err := model.NormalizeCategory(a.Category)
				if err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
				}
				category = parsed
			}
			block := model.Block{
				ID:              uuid.NewString(),
				Category:        category,
				Title:           a.Title,
				Mode:            model.ModeManual,
				DurationMinutes: 50,
			}
			if _, err := m.Store.AddBlock(ctx, dayrecord.TargetToday, block); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added block: %s", a.Title)}, nil
		},
		Skip: func() (commands.Result, error) {
			if _, err := m.Store.RecordSkippedSession(ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "session skipped"}, nil
		},
		Distract: func(a commands.DistractArgs) (commands.Result, error) {
			if _, err := m.Store.AddDistraction(ctx, a.Note); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "distraction logged"}, nil
		},
		Reflect: func(a commands.ReflectArgs) (commands.Result, error) {
			if _, err := m.Store.UpdateToday(ctx, func(day *model.DayRecord) {
				setReflectionField(&day.Reflection, a.Field, a.Text)
			}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reflection saved: %s", a.Field)}, nil
		},
		Ack: func() (commands.Result, error) {
			if m.Repeater != nil {
				m.Repeater.Acknowledge()
			}
			return commands.Result{Message: "alarm acknowledged"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		if cmd.Type == commands.TypeAck {
			m.HardModePending = false
		}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
