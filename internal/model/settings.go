package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAlarmEvent = errors.New("model: invalid alarm event")
	ErrInvalidAlarmTone  = errors.New("model: invalid alarm tone")
)

// AlarmEvent is the closed set of transition events an alarm can be
// configured for. Iterate AlarmEvents(), never map keys, so ordering is
// stable.
type AlarmEvent string

const (
	AlarmWorkStart   AlarmEvent = "workStart"
	AlarmWorkEnd     AlarmEvent = "workEnd"
	AlarmBreakStart  AlarmEvent = "breakStart"
	AlarmBreakEnd    AlarmEvent = "breakEnd"
	AlarmBlockStart  AlarmEvent = "blockStart"
	AlarmBlockEnd    AlarmEvent = "blockEnd"
	AlarmDayComplete AlarmEvent = "dayComplete"
)

func AlarmEvents() []AlarmEvent {
	return []AlarmEvent{
		AlarmWorkStart,
		AlarmWorkEnd,
		AlarmBreakStart,
		AlarmBreakEnd,
		AlarmBlockStart,
		AlarmBlockEnd,
		AlarmDayComplete,
	}
}

func (e AlarmEvent) IsValid() bool {
	switch e {
	case AlarmWorkStart, AlarmWorkEnd, AlarmBreakStart, AlarmBreakEnd,
		AlarmBlockStart, AlarmBlockEnd, AlarmDayComplete:
		return true
	default:
		return false
	}
}

// IsEndEvent reports whether the event marks the end of a work or break
// segment. Hard mode re-alerts apply to end events only.
func (e AlarmEvent) IsEndEvent() bool {
	switch e {
	case AlarmWorkEnd, AlarmBreakEnd, AlarmBlockEnd:
		return true
	default:
		return false
	}
}

type AlarmTone string

const (
	ToneClassic AlarmTone = "classic"
	ToneDigital AlarmTone = "digital"
	ToneChime   AlarmTone = "chime"
	ToneGong    AlarmTone = "gong"
	ToneUrgent  AlarmTone = "urgent"
)

func (t AlarmTone) IsValid() bool {
	switch t {
	case ToneClassic, ToneDigital, ToneChime, ToneGong, ToneUrgent:
		return true
	default:
		return false
	}
}

type AlarmConfig struct {
	Enabled bool
	Tone    AlarmTone
}

type Settings struct {
	HardMode             bool
	RamadanMode          bool
	Volume               float64
	VibrationEnabled     bool
	FocusTreeEnabled     bool
	FloatingTimerEnabled bool
	Alarms               map[AlarmEvent]AlarmConfig
}

func (s Settings) Validate() error {
	if s.Volume < 0 || s.Volume > 1 {
		return errors.New("model: volume must be within [0, 1]")
	}
	for event, cfg := range s.Alarms {
		if !event.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidAlarmEvent, event)
		}
		if !cfg.Tone.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidAlarmTone, cfg.Tone)
		}
	}
	return nil
}

// AlarmFor looks up the config for an event, falling back to the default
// when a stored settings record predates the event.
func (s Settings) AlarmFor(event AlarmEvent) AlarmConfig {
	if cfg, ok := s.Alarms[event]; ok {
		return cfg
	}
	return DefaultSettings().Alarms[event]
}

func DefaultSettings() Settings {
	return Settings{
		HardMode:         false,
		RamadanMode:      false,
		Volume:           0.8,
		VibrationEnabled: true,
		FocusTreeEnabled: true,
		Alarms: map[AlarmEvent]AlarmConfig{
			AlarmWorkStart:   {Enabled: true, Tone: ToneChime},
			AlarmWorkEnd:     {Enabled: true, Tone: ToneUrgent},
			AlarmBreakStart:  {Enabled: true, Tone: ToneGong},
			AlarmBreakEnd:    {Enabled: true, Tone: ToneDigital},
			AlarmBlockStart:  {Enabled: true, Tone: ToneClassic},
			AlarmBlockEnd:    {Enabled: true, Tone: ToneClassic},
			AlarmDayComplete: {Enabled: true, Tone: ToneClassic},
		},
	}
}

// MergeSettings overlays a stored record on the defaults so new alarm
// events and fields pick up sane values after an upgrade.
func MergeSettings(stored Settings) Settings {
	merged := stored
	defaults := DefaultSettings()
	if merged.Alarms == nil {
		merged.Alarms = map[AlarmEvent]AlarmConfig{}
	}
	for _, event := range AlarmEvents() {
		if _, ok := merged.Alarms[event]; !ok {
			merged.Alarms[event] = defaults.Alarms[event]
		}
	}
	return merged
}
