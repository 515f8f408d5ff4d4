// Package registry implements the conflict-aware operations on a single
// day's schedule: add, delete, and copying one day forward onto another.
// Every operation is load, mutate in memory, save; nothing is persisted when
// an operation fails.
package registry

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/sandeepkv93/daysched/internal/model"
	"github.com/sandeepkv93/daysched/internal/storage"
)

type Registry struct {
	store storage.Store
	log   *slog.Logger

	// one writer at a time across all dates; copy touches two.
	mu sync.Mutex
}

func New(store storage.Store, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{store: store, log: log}
}

// Day returns the schedule stored for date; an unknown date is an empty
// schedule.
func (r *Registry) Day(ctx context.Context, date string) (model.Schedule, error) {
	return r.store.LoadDay(ctx, date)
}

// Dates lists every date with a stored schedule, ascending.
func (r *Registry) Dates(ctx context.Context) ([]string, error) {
	return r.store.ListDates(ctx)
}

// AddTask validates in, checks it against every task already on date, mints
// the next sequential ID, and persists the grown schedule. The new task's ID
// is returned.
func (r *Registry) AddTask(ctx context.Context, date string, in model.Task) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", &ValidationError{Reason: "name is required"}
	}
	start, end, err := in.Times()
	if err != nil {
		return "", err
	}
	if start >= end {
		return "", &ValidationError{Reason: "start_time must be before end_time"}
	}
	if in.Subtasks == nil {
		in.Subtasks = []string{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sched, err := r.store.LoadDay(ctx, date)
	if err != nil {
		return "", err
	}
	if name, hit := sched.Conflict(start, end); hit {
		return "", &ConflictError{TaskName: name}
	}

	id := sched.NextID(date)
	next := sched.Clone()
	next[id] = in
	if err := r.store.SaveDay(ctx, date, next); err != nil {
		return "", err
	}
	r.log.Info("task added", "date", date, "task_id", id, "name", in.Name)
	return id, nil
}

// DeleteTask removes the task named by id from the date encoded in its
// prefix and returns the removed record.
func (r *Registry) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	date, ok := model.DateOfTaskID(id)
	if !ok {
		return model.Task{}, &NotFoundError{TaskID: id}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sched, err := r.store.LoadDay(ctx, date)
	if err != nil {
		return model.Task{}, err
	}
	task, exists := sched[id]
	if !exists {
		return model.Task{}, &NotFoundError{TaskID: id, Available: sched.SortedIDs()}
	}

	next := sched.Clone()
	delete(next, id)
	if err := r.store.SaveDay(ctx, date, next); err != nil {
		return model.Task{}, err
	}
	r.log.Info("task deleted", "date", date, "task_id", id)
	return task, nil
}

// CopyDay copies every task from sourceDate onto targetDate. Copied tasks
// get fresh IDs continuing from the target's current highest sequence, so an
// already-populated target keeps its IDs unique. The copy is all-or-nothing:
// a single conflict against the target's existing tasks aborts it with no
// mutation. The returned flag reports whether the target already had tasks.
func (r *Registry) CopyDay(ctx context.Context, sourceDate, targetDate string) (copied int, appended bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	source, err := r.store.LoadDay(ctx, sourceDate)
	if err != nil {
		return 0, false, err
	}
	if len(source) == 0 {
		return 0, false, &EmptySourceError{Date: sourceDate}
	}
	target, err := r.store.LoadDay(ctx, targetDate)
	if err != nil {
		return 0, false, err
	}

	// each copied task is checked against what the target already holds,
	// not against the other copies
	for _, id := range source.SortedIDs() {
		task := source[id]
		start, end, timeErr := task.Times()
		if timeErr != nil {
			continue
		}
		if name, hit := target.Conflict(start, end); hit {
			return 0, false, &ConflictError{TaskName: name}
		}
	}

	appended = len(target) > 0
	merged := target.Clone()
	seq := target.MaxSequence()
	for _, id := range source.SortedIDs() {
		seq++
		merged[model.TaskID(targetDate, seq)] = source[id]
		copied++
	}
	if err := r.store.SaveDay(ctx, targetDate, merged); err != nil {
		return 0, false, err
	}
	r.log.Info("schedule copied", "source", sourceDate, "target", targetDate, "tasks", copied)
	return copied, appended, nil
}
