// Package config loads daemon settings from, in priority order: built-in
// defaults, an optional TOML file, then DAYSCHED_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ListenAddr string `toml:"listen_addr"`
	DBPath     string `toml:"db_path"`

	SoundDir     string `toml:"sound_dir"`
	SoundWorkers int    `toml:"sound_workers"`
	SoundQueue   int    `toml:"sound_queue"`

	ReminderLeadMinutes  int  `toml:"reminder_lead_minutes"`
	ScanIntervalSeconds  int  `toml:"scan_interval_seconds"`
	SchedulerBuffer      int  `toml:"scheduler_buffer"`
	DesktopNotifications bool `toml:"desktop_notifications"`

	AllowedOrigins []string `toml:"allowed_origins"`
	LogLevel       string   `toml:"log_level"`
}

func Default() Config {
	return Config{
		ListenAddr:           ":5000",
		DBPath:               "daysched.db",
		SoundDir:             "notification_sounds",
		SoundWorkers:         2,
		SoundQueue:           16,
		ReminderLeadMinutes:  5,
		ScanIntervalSeconds:  60,
		SchedulerBuffer:      64,
		DesktopNotifications: true,
		AllowedOrigins:       []string{"*"},
		LogLevel:             "info",
	}
}

// Load applies the file at path (when path is non-empty and exists) and then
// the environment on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return FromEnv(cfg), nil
}

// FromEnv overrides fields that have a DAYSCHED_* variable set.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("DAYSCHED_LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYSCHED_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYSCHED_SOUND_DIR")); v != "" {
		cfg.SoundDir = v
	}
	if v, ok := getEnvInt("DAYSCHED_SOUND_WORKERS"); ok && v > 0 {
		cfg.SoundWorkers = v
	}
	if v, ok := getEnvInt("DAYSCHED_SOUND_QUEUE"); ok && v > 0 {
		cfg.SoundQueue = v
	}
	if v, ok := getEnvInt("DAYSCHED_REMINDER_LEAD_MINUTES"); ok && v > 0 {
		cfg.ReminderLeadMinutes = v
	}
	if v, ok := getEnvInt("DAYSCHED_SCAN_INTERVAL_SECONDS"); ok && v > 0 {
		cfg.ScanIntervalSeconds = v
	}
	if v, ok := getEnvInt("DAYSCHED_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("DAYSCHED_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYSCHED_ALLOWED_ORIGINS")); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}
	if v := strings.TrimSpace(os.Getenv("DAYSCHED_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

func (c Config) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalSeconds) * time.Second
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
