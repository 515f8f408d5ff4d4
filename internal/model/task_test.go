package model

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/daysched/internal/clock"
)

func TestValidate(t *testing.T) {
	ok := Task{Name: "Standup", StartTime: "09:00", EndTime: "09:15"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	if err := (Task{Name: "  ", StartTime: "09:00", EndTime: "09:15"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	var parseErr *clock.ParseError
	err := (Task{Name: "x", StartTime: "9am", EndTime: "09:15"}).Validate()
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *clock.ParseError, got %v", err)
	}
}

func TestAlertsDefaults(t *testing.T) {
	task := Task{Name: "x", StartTime: "09:00", EndTime: "10:00"}
	alerts := task.Alerts(0)
	if !alerts.Enabled || alerts.LeadMinutes != DefaultReminderLead || alerts.Sound != DefaultSound || alerts.Volume != DefaultVolume {
		t.Fatalf("unexpected defaults: %#v", alerts)
	}
}

func TestAlertsOverrides(t *testing.T) {
	disabled := false
	lead := 10
	volume := 80
	task := Task{
		Name:      "x",
		StartTime: "09:00",
		EndTime:   "10:00",
		Notification: &NotificationSettings{
			Enabled:      &disabled,
			ReminderTime: &lead,
			SoundType:    "chime",
			Volume:       &volume,
		},
	}
	alerts := task.Alerts(5)
	if alerts.Enabled {
		t.Fatalf("explicit enabled=false was lost")
	}
	if alerts.LeadMinutes != 10 || alerts.Sound != "chime" || alerts.Volume != 80 {
		t.Fatalf("unexpected overrides: %#v", alerts)
	}
}

func TestAlertsRejectsOutOfRangeVolume(t *testing.T) {
	volume := 250
	task := Task{Name: "x", StartTime: "09:00", EndTime: "10:00", Notification: &NotificationSettings{Volume: &volume}}
	if got := task.Alerts(5).Volume; got != DefaultVolume {
		t.Fatalf("out-of-range volume accepted: %d", got)
	}
}

func TestTaskIDHelpers(t *testing.T) {
	if id := TaskID("2024-06-01", 1); id != "2024-06-01_001" {
		t.Fatalf("TaskID: %s", id)
	}
	date, ok := DateOfTaskID("2024-06-01_007")
	if !ok || date != "2024-06-01" {
		t.Fatalf("DateOfTaskID: %s %v", date, ok)
	}
	if _, ok := DateOfTaskID("garbage"); ok {
		t.Fatalf("DateOfTaskID accepted id without prefix")
	}
}
