package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"focusgrid/internal/model"
	"focusgrid/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	events := model.AlarmEvents()
	switch msg.String() {
	case "j", "down":
		if m.settingsCursor < len(events)-1 {
			m.settingsCursor++
		}
		return m
	case "k", "up":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
		return m
	case "enter":
		event := events[m.settingsCursor]
		return m.mutateSettings(fmt.Sprintf("alarm %s toggled", event), func(s *model.Settings) {
			cfg := s.AlarmFor(event)
			cfg.Enabled = !cfg.Enabled
			s.Alarms[event] = cfg
		})
	case "h":
		return m.mutateSettings("hard mode toggled", func(s *model.Settings) { s.HardMode = !s.HardMode })
	case "m":
		return m.mutateSettings("ramadan mode toggled", func(s *model.Settings) { s.RamadanMode = !s.RamadanMode })
	case "t":
		return m.mutateSettings("focus tree toggled", func(s *model.Settings) { s.FocusTreeEnabled = !s.FocusTreeEnabled })
	case "v":
		return m.mutateSettings("vibration toggled", func(s *model.Settings) { s.VibrationEnabled = !s.VibrationEnabled })
	}
	return m
}

func (m Model) mutateSettings(statusText string, mutate func(*model.Settings)) Model {
	if _, err := m.Store.UpdateSettings(context.Background(), mutate); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: statusText, IsError: false}
	return m
}

func (m Model) renderSettingsView() string {
	settings := m.Store.Settings()
	alarms := make([]views.AlarmRowData, 0)
	for _, event := range model.AlarmEvents() {
		cfg := settings.AlarmFor(event)
		alarms = append(alarms, views.AlarmRowData{
			Event:   string(event),
			Enabled: cfg.Enabled,
			Tone:    string(cfg.Tone),
		})
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		HardMode:    settings.HardMode,
		RamadanMode: settings.RamadanMode,
		FocusTree:   settings.FocusTreeEnabled,
		Vibration:   settings.VibrationEnabled,
		Volume:      settings.Volume,
		Alarms:      alarms,
		Cursor:      m.settingsCursor,
	})
}
