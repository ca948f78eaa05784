package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath          string
	DesktopNotifications  bool
	HardModeRepeatSeconds int
	RolloverPollSeconds   int
	RecomputeMinutes      int
	AlarmBuffer           int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:          defaultDatabasePath(),
		DesktopNotifications:  false,
		HardModeRepeatSeconds: 15,
		RolloverPollSeconds:   30,
		RecomputeMinutes:      5,
		AlarmBuffer:           16,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FOCUSGRID_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvBool("FOCUSGRID_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSGRID_HARD_MODE_REPEAT_SECONDS"); ok && v > 0 {
		cfg.HardModeRepeatSeconds = v
	}
	if v, ok := getEnvInt("FOCUSGRID_ROLLOVER_POLL_SECONDS"); ok && v > 0 {
		cfg.RolloverPollSeconds = v
	}
	if v, ok := getEnvInt("FOCUSGRID_RECOMPUTE_MINUTES"); ok && v > 0 {
		cfg.RecomputeMinutes = v
	}
	if v, ok := getEnvInt("FOCUSGRID_ALARM_BUFFER"); ok && v > 0 {
		cfg.AlarmBuffer = v
	}
	return cfg
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusgrid.db"
	}
	return filepath.Join(home, ".focusgrid", "focusgrid.db")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
