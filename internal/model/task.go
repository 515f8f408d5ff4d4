package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/daysched/internal/clock"
)

// DateLayout is the calendar-date key format used everywhere a schedule is
// addressed: storage keys, task ID prefixes, and the HTTP API.
const DateLayout = "2006-01-02"

// Defaults applied to notification settings at read time.
const (
	DefaultReminderLead = 5
	DefaultSound        = "default"
	DefaultVolume       = 50
)

var ErrEmptyName = errors.New("model: task name is required")

// NotificationSettings is the optional per-task notification block as it
// appears on the wire and on disk. Pointers keep an explicit false/0
// distinguishable from an omitted field.
type NotificationSettings struct {
	Enabled      *bool  `json:"enabled,omitempty"`
	ReminderTime *int   `json:"reminder_time,omitempty"`
	SoundType    string `json:"sound_type,omitempty"`
	Volume       *int   `json:"volume,omitempty"`
}

// TaskAlerts is a NotificationSettings with every default filled in.
type TaskAlerts struct {
	Enabled     bool
	LeadMinutes int
	Sound       string
	Volume      int
}

type Task struct {
	Name         string                `json:"name"`
	StartTime    string                `json:"start_time"`
	EndTime      string                `json:"end_time"`
	Subtasks     []string              `json:"subtasks"`
	Notification *NotificationSettings `json:"notification,omitempty"`
}

// Times parses both clock fields. A malformed value surfaces as a
// *clock.ParseError.
func (t Task) Times() (start, end clock.Minute, err error) {
	start, err = clock.Parse(t.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = clock.Parse(t.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	_, _, err := t.Times()
	return err
}

// Alerts resolves the task's notification settings, falling back to
// defaultLead minutes when the task does not carry its own lead time.
func (t Task) Alerts(defaultLead int) TaskAlerts {
	out := TaskAlerts{
		Enabled:     true,
		LeadMinutes: defaultLead,
		Sound:       DefaultSound,
		Volume:      DefaultVolume,
	}
	if out.LeadMinutes <= 0 {
		out.LeadMinutes = DefaultReminderLead
	}
	n := t.Notification
	if n == nil {
		return out
	}
	if n.Enabled != nil {
		out.Enabled = *n.Enabled
	}
	if n.ReminderTime != nil && *n.ReminderTime > 0 {
		out.LeadMinutes = *n.ReminderTime
	}
	if strings.TrimSpace(n.SoundType) != "" {
		out.Sound = n.SoundType
	}
	if n.Volume != nil && *n.Volume >= 0 && *n.Volume <= 100 {
		out.Volume = *n.Volume
	}
	return out
}

// TaskID builds the canonical task identifier for a date and sequence number.
func TaskID(date string, seq int) string {
	return fmt.Sprintf("%s_%03d", date, seq)
}

// DateOfTaskID extracts the owning date from a task ID. The second return is
// false when the ID does not carry a date prefix.
func DateOfTaskID(id string) (string, bool) {
	date, _, ok := strings.Cut(id, "_")
	if !ok || date == "" {
		return "", false
	}
	return date, true
}
