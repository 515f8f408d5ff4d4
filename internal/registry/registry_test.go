package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sandeepkv93/daysched/internal/model"
)

// memStore is an in-memory stand-in for the sqlite-backed store.
type memStore struct {
	days  map[string]model.Schedule
	saves int
	fail  error
}

func newMemStore() *memStore {
	return &memStore{days: make(map[string]model.Schedule)}
}

func (m *memStore) LoadDay(_ context.Context, date string) (model.Schedule, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	sched, ok := m.days[date]
	if !ok {
		return model.Schedule{}, nil
	}
	return sched.Clone(), nil
}

func (m *memStore) SaveDay(_ context.Context, date string, sched model.Schedule) error {
	if m.fail != nil {
		return m.fail
	}
	m.days[date] = sched.Clone()
	m.saves++
	return nil
}

func (m *memStore) ListDates(_ context.Context) ([]string, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]string, 0, len(m.days))
	for date := range m.days {
		out = append(out, date)
	}
	return out, nil
}

func task(name, start, end string) model.Task {
	return model.Task{Name: name, StartTime: start, EndTime: end, Subtasks: []string{}}
}

func TestAddTaskAssignsSequentialIDs(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	for i, in := range []model.Task{
		task("breakfast", "08:00", "08:30"),
		task("standup", "09:00", "09:15"),
		task("deep work", "09:30", "11:30"),
	} {
		id, err := reg.AddTask(ctx, "2024-06-01", in)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		want := fmt.Sprintf("2024-06-01_%03d", i+1)
		if id != want {
			t.Fatalf("id = %s, want %s", id, want)
		}
	}
	if len(store.days["2024-06-01"]) != 3 {
		t.Fatalf("expected 3 persisted tasks, got %d", len(store.days["2024-06-01"]))
	}
}

func TestAddTaskConflictLeavesScheduleUntouched(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	if _, err := reg.AddTask(ctx, "2024-01-01", task("Standup", "09:00", "09:15")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	savesBefore := store.saves

	_, err := reg.AddTask(ctx, "2024-01-01", task("overlap", "09:10", "09:30"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if conflict.TaskName != "Standup" {
		t.Fatalf("conflict names %q, want Standup", conflict.TaskName)
	}
	if store.saves != savesBefore {
		t.Fatalf("failed add must not persist anything")
	}

	// the adjacent slot is free: [s,e) intervals
	id, err := reg.AddTask(ctx, "2024-01-01", task("retro", "09:15", "09:30"))
	if err != nil {
		t.Fatalf("adjacent add: %v", err)
	}
	if id != "2024-01-01_002" {
		t.Fatalf("adjacent add id = %s, want 2024-01-01_002", id)
	}
}

func TestAddTaskValidation(t *testing.T) {
	reg := New(newMemStore(), nil)
	ctx := context.Background()

	var vErr *ValidationError
	if _, err := reg.AddTask(ctx, "2024-06-01", task("", "09:00", "10:00")); !errors.As(err, &vErr) {
		t.Fatalf("empty name: expected *ValidationError, got %v", err)
	}
	if _, err := reg.AddTask(ctx, "2024-06-01", task("x", "10:00", "09:00")); !errors.As(err, &vErr) {
		t.Fatalf("start after end: expected *ValidationError, got %v", err)
	}
	if _, err := reg.AddTask(ctx, "2024-06-01", task("x", "10:00", "10:00")); !errors.As(err, &vErr) {
		t.Fatalf("zero-length: expected *ValidationError, got %v", err)
	}
	if _, err := reg.AddTask(ctx, "2024-06-01", task("x", "ten", "11:00")); err == nil {
		t.Fatalf("malformed time accepted")
	}
}

func TestDeleteTask(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	id, err := reg.AddTask(ctx, "2024-06-01", task("standup", "09:00", "09:15"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	deleted, err := reg.DeleteTask(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Name != "standup" {
		t.Fatalf("deleted task = %#v", deleted)
	}
	if len(store.days["2024-06-01"]) != 0 {
		t.Fatalf("task still persisted after delete")
	}
}

func TestDeleteUnknownTaskReportsAvailableIDs(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	if _, err := reg.AddTask(ctx, "2024-06-01", task("a", "09:00", "10:00")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	savesBefore := store.saves

	_, err := reg.DeleteTask(ctx, "2024-06-01_099")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if len(notFound.Available) != 1 || notFound.Available[0] != "2024-06-01_001" {
		t.Fatalf("available IDs = %v", notFound.Available)
	}
	if store.saves != savesBefore {
		t.Fatalf("failed delete must not persist anything")
	}
}

func TestCopyDayIntoEmptyTarget(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	for _, in := range []model.Task{
		task("standup", "09:00", "09:15"),
		task("review", "10:00", "11:00"),
	} {
		if _, err := reg.AddTask(ctx, "2024-06-01", in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	copied, appended, err := reg.CopyDay(ctx, "2024-06-01", "2024-06-02")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 2 || appended {
		t.Fatalf("copied=%d appended=%v, want 2 false", copied, appended)
	}

	target := store.days["2024-06-02"]
	first, ok := target["2024-06-02_001"]
	if !ok || first.Name != "standup" || first.StartTime != "09:00" {
		t.Fatalf("copy did not reproduce tasks under fresh IDs: %#v", target)
	}
	if _, ok := target["2024-06-02_002"]; !ok {
		t.Fatalf("second copied task missing: %#v", target)
	}
}

func TestCopyDayContinuesTargetNumbering(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	if _, err := reg.AddTask(ctx, "2024-06-01", task("standup", "09:00", "09:15")); err != nil {
		t.Fatalf("seed source: %v", err)
	}
	if _, err := reg.AddTask(ctx, "2024-06-02", task("lunch", "12:00", "13:00")); err != nil {
		t.Fatalf("seed target: %v", err)
	}

	copied, appended, err := reg.CopyDay(ctx, "2024-06-01", "2024-06-02")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied != 1 || !appended {
		t.Fatalf("copied=%d appended=%v, want 1 true", copied, appended)
	}
	target := store.days["2024-06-02"]
	if _, ok := target["2024-06-02_002"]; !ok {
		t.Fatalf("copied task must continue from target max ID: %#v", target)
	}
	if len(target) != 2 {
		t.Fatalf("target size = %d, want 2", len(target))
	}
}

func TestCopyDayIsAllOrNothing(t *testing.T) {
	store := newMemStore()
	reg := New(store, nil)
	ctx := context.Background()

	if _, err := reg.AddTask(ctx, "2024-06-01", task("early", "08:00", "08:30")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := reg.AddTask(ctx, "2024-06-01", task("clash", "12:30", "13:30")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := reg.AddTask(ctx, "2024-06-02", task("lunch", "12:00", "13:00")); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	savesBefore := store.saves

	_, _, err := reg.CopyDay(ctx, "2024-06-01", "2024-06-02")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if conflict.TaskName != "lunch" {
		t.Fatalf("conflict names %q, want lunch", conflict.TaskName)
	}
	if store.saves != savesBefore {
		t.Fatalf("failed copy must not persist anything")
	}
	if len(store.days["2024-06-02"]) != 1 {
		t.Fatalf("target mutated by failed copy: %#v", store.days["2024-06-02"])
	}
}

func TestCopyDayEmptySource(t *testing.T) {
	reg := New(newMemStore(), nil)
	_, _, err := reg.CopyDay(context.Background(), "2024-06-01", "2024-06-02")
	var empty *EmptySourceError
	if !errors.As(err, &empty) {
		t.Fatalf("expected *EmptySourceError, got %v", err)
	}
	if empty.Date != "2024-06-01" {
		t.Fatalf("empty source date = %s", empty.Date)
	}
}
