package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandeepkv93/daysched/internal/clock"
	"github.com/sandeepkv93/daysched/internal/model"
	"github.com/sandeepkv93/daysched/internal/storage"
)

const DefaultScanInterval = time.Minute

// Scanner polls the current day's schedule and plans each task's two
// reminder boundaries into the engine. The planned set remembers which
// boundaries were already handed over, so re-reading the same schedule on
// the next tick never double-fires; it resets when the calendar date rolls
// over.
// BoundaryPlanner receives boundaries the scanner wants delivered; the
// Engine is the production implementation.
type BoundaryPlanner interface {
	Schedule(ReminderEvent) error
}

type Scanner struct {
	store    storage.Store
	engine   BoundaryPlanner
	log      *slog.Logger
	lead     int
	interval time.Duration
	now      func() time.Time

	planned     map[string]struct{}
	plannedDate string
}

// ScannerConfig tunes a Scanner. Zero values fall back to the defaults:
// the model's reminder lead, a one-minute scan interval, and time.Now.
type ScannerConfig struct {
	DefaultLead int
	Interval    time.Duration
	Now         func() time.Time
}

func NewScanner(store storage.Store, engine BoundaryPlanner, log *slog.Logger, cfg ScannerConfig) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	if cfg.DefaultLead <= 0 {
		cfg.DefaultLead = model.DefaultReminderLead
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultScanInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scanner{
		store:    store,
		engine:   engine,
		log:      log,
		lead:     cfg.DefaultLead,
		interval: cfg.Interval,
		now:      cfg.Now,
		planned:  make(map[string]struct{}),
	}
}

// Run scans immediately and then once per interval until ctx is cancelled.
// Any per-tick failure is logged and the loop keeps going.
func (s *Scanner) Run(ctx context.Context) {
	s.scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *Scanner) scan(ctx context.Context) {
	now := s.now()
	date := now.Format(model.DateLayout)
	if date != s.plannedDate {
		s.planned = make(map[string]struct{})
		s.plannedDate = date
	}

	sched, err := s.store.LoadDay(ctx, date)
	if err != nil {
		s.log.Warn("reminder scan skipped", "date", date, "error", err)
		return
	}

	for _, id := range sched.SortedIDs() {
		task := sched[id]
		alerts := task.Alerts(s.lead)
		if !alerts.Enabled {
			continue
		}
		start, end, err := task.Times()
		if err != nil {
			s.log.Warn("task has unparseable times", "task_id", id, "error", err)
			continue
		}
		s.plan(now, date, id, task, alerts, StartingSoon, start)
		s.plan(now, date, id, task, alerts, EndingSoon, end)
	}
}

func (s *Scanner) plan(now time.Time, date, id string, task model.Task, alerts model.TaskAlerts, kind BoundaryKind, boundary clock.Minute) {
	trigger := boundary.Sub(alerts.LeadMinutes).On(now)
	// a boundary whose reminder minute has already passed stays unplanned;
	// equality with the current minute still fires
	if trigger.Before(now.Truncate(time.Minute)) {
		return
	}

	ev := ReminderEvent{
		Date:        date,
		TaskID:      id,
		TaskName:    task.Name,
		Kind:        kind,
		LeadMinutes: alerts.LeadMinutes,
		Subtasks:    task.Subtasks,
		Sound:       alerts.Sound,
		Volume:      alerts.Volume,
		TriggerAt:   trigger,
	}
	if _, done := s.planned[ev.Key()]; done {
		return
	}
	if err := s.engine.Schedule(ev); err != nil {
		s.log.Warn("could not plan reminder", "task_id", id, "kind", string(kind), "error", err)
		return
	}
	s.planned[ev.Key()] = struct{}{}
}
