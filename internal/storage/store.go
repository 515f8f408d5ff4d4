package storage

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/daysched/internal/model"
)

// Store is the per-date schedule collection. Implementations must serialize
// concurrent saves; load of an unknown date returns an empty schedule, not an
// error.
type Store interface {
	LoadDay(ctx context.Context, date string) (model.Schedule, error)
	SaveDay(ctx context.Context, date string, sched model.Schedule) error
	ListDates(ctx context.Context) ([]string, error)
}

// StorageError wraps a persistence failure with the operation and date it
// belongs to.
type StorageError struct {
	Op   string
	Date string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Date, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
