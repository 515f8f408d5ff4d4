package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/daysched/internal/model"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) set(t *testing.T, value string) {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	f.t = parsed
}

type fakeStore struct {
	days map[string]model.Schedule
	err  error
}

func (s *fakeStore) LoadDay(_ context.Context, date string) (model.Schedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	sched, ok := s.days[date]
	if !ok {
		return model.Schedule{}, nil
	}
	return sched, nil
}

func (s *fakeStore) SaveDay(context.Context, string, model.Schedule) error { return nil }

func (s *fakeStore) ListDates(context.Context) ([]string, error) { return nil, nil }

type capturePlanner struct {
	events []ReminderEvent
	err    error
}

func (p *capturePlanner) Schedule(ev ReminderEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func standupSchedule() map[string]model.Schedule {
	return map[string]model.Schedule{
		"2024-06-01": {
			"2024-06-01_001": {Name: "Standup", StartTime: "09:00", EndTime: "10:00", Subtasks: []string{"board"}},
		},
	}
}

func newTestScanner(store *fakeStore, planner *capturePlanner, clock *fakeNow) *Scanner {
	return NewScanner(store, planner, nil, ScannerConfig{DefaultLead: 5, Now: clock.now})
}

func TestScanPlansBothBoundariesOnce(t *testing.T) {
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:50:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: standupSchedule()}, planner, clock)

	s.scan(context.Background())
	if len(planner.events) != 2 {
		t.Fatalf("expected 2 planned boundaries, got %d", len(planner.events))
	}

	byKind := map[BoundaryKind]ReminderEvent{}
	for _, ev := range planner.events {
		byKind[ev.Kind] = ev
	}
	start := byKind[StartingSoon]
	if start.TriggerAt.Format("15:04") != "08:55" || start.TaskName != "Standup" || start.LeadMinutes != 5 {
		t.Fatalf("unexpected starting-soon event: %#v", start)
	}
	end := byKind[EndingSoon]
	if end.TriggerAt.Format("15:04") != "09:55" {
		t.Fatalf("unexpected ending-soon event: %#v", end)
	}

	// subsequent ticks must not re-plan the same boundaries
	clock.set(t, "2024-06-01 08:55:30")
	s.scan(context.Background())
	clock.set(t, "2024-06-01 08:56:00")
	s.scan(context.Background())
	if len(planner.events) != 2 {
		t.Fatalf("boundary planned more than once: %d events", len(planner.events))
	}
}

func TestScanAtExactReminderMinuteStillFires(t *testing.T) {
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:55:42")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: standupSchedule()}, planner, clock)

	s.scan(context.Background())
	var sawStart bool
	for _, ev := range planner.events {
		if ev.Kind == StartingSoon {
			sawStart = true
			if ev.TriggerAt.Format("15:04") != "08:55" {
				t.Fatalf("trigger = %s, want 08:55", ev.TriggerAt.Format("15:04"))
			}
		}
	}
	if !sawStart {
		t.Fatalf("starting-soon boundary not planned at its own minute")
	}
}

func TestScanSkipsAlreadyPassedBoundary(t *testing.T) {
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:56:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: standupSchedule()}, planner, clock)

	s.scan(context.Background())
	for _, ev := range planner.events {
		if ev.Kind == StartingSoon {
			t.Fatalf("boundary from the past must not be planned: %#v", ev)
		}
	}
}

func TestScanHonorsDisabledNotifications(t *testing.T) {
	disabled := false
	days := map[string]model.Schedule{
		"2024-06-01": {
			"2024-06-01_001": {
				Name: "Quiet", StartTime: "09:00", EndTime: "10:00",
				Notification: &model.NotificationSettings{Enabled: &disabled},
			},
		},
	}
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:00:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: days}, planner, clock)

	s.scan(context.Background())
	if len(planner.events) != 0 {
		t.Fatalf("disabled task planned events: %#v", planner.events)
	}
}

func TestScanUsesTaskLeadOverride(t *testing.T) {
	lead := 15
	days := map[string]model.Schedule{
		"2024-06-01": {
			"2024-06-01_001": {
				Name: "Long lead", StartTime: "09:00", EndTime: "10:00",
				Notification: &model.NotificationSettings{ReminderTime: &lead},
			},
		},
	}
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:00:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: days}, planner, clock)

	s.scan(context.Background())
	for _, ev := range planner.events {
		if ev.Kind == StartingSoon && ev.TriggerAt.Format("15:04") != "08:45" {
			t.Fatalf("trigger = %s, want 08:45", ev.TriggerAt.Format("15:04"))
		}
	}
}

func TestScanResetsPlannedSetAtRollover(t *testing.T) {
	days := standupSchedule()
	days["2024-06-02"] = model.Schedule{
		"2024-06-02_001": {Name: "Standup", StartTime: "09:00", EndTime: "10:00"},
	}
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:00:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: days}, planner, clock)

	s.scan(context.Background())
	planned := len(planner.events)
	if planned != 2 {
		t.Fatalf("day one planned %d events", planned)
	}

	clock.set(t, "2024-06-02 08:00:00")
	s.scan(context.Background())
	if len(planner.events) != planned+2 {
		t.Fatalf("rollover did not re-plan the new day: total %d", len(planner.events))
	}
}

func TestScanSurvivesStoreFailure(t *testing.T) {
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:00:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{err: errors.New("disk gone")}, planner, clock)

	s.scan(context.Background())
	if len(planner.events) != 0 {
		t.Fatalf("events planned despite store failure")
	}
	// next tick with a healthy store proceeds normally
	s.store = &fakeStore{days: standupSchedule()}
	s.scan(context.Background())
	if len(planner.events) != 2 {
		t.Fatalf("scanner did not recover after store failure")
	}
}

func TestScanSkipsUnparseableStoredTask(t *testing.T) {
	days := map[string]model.Schedule{
		"2024-06-01": {
			"2024-06-01_001": {Name: "broken", StartTime: "morning", EndTime: "10:00"},
			"2024-06-01_002": {Name: "fine", StartTime: "11:00", EndTime: "12:00"},
		},
	}
	clock := &fakeNow{}
	clock.set(t, "2024-06-01 08:00:00")
	planner := &capturePlanner{}
	s := newTestScanner(&fakeStore{days: days}, planner, clock)

	s.scan(context.Background())
	if len(planner.events) != 2 {
		t.Fatalf("expected only the parseable task's boundaries, got %d", len(planner.events))
	}
	for _, ev := range planner.events {
		if ev.TaskName != "fine" {
			t.Fatalf("unexpected event for %q", ev.TaskName)
		}
	}
}
