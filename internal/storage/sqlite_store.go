package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/daysched/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps one row per calendar date; the row's tasks column is the
// whole day's schedule as a single JSON document.
type SQLiteStore struct {
	db *sql.DB

	// serializes writers; two concurrent SaveDay calls to the same date
	// must not interleave.
	mu sync.Mutex
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadDay(ctx context.Context, date string) (model.Schedule, error) {
	row := s.db.QueryRowContext(ctx, `SELECT tasks FROM schedules WHERE date = ?`, date)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Schedule{}, nil
		}
		return nil, &StorageError{Op: "load", Date: date, Err: err}
	}

	var sched model.Schedule
	if err := json.Unmarshal([]byte(doc), &sched); err != nil {
		return nil, &StorageError{Op: "decode", Date: date, Err: err}
	}
	if sched == nil {
		sched = model.Schedule{}
	}
	return sched, nil
}

func (s *SQLiteStore) SaveDay(ctx context.Context, date string, sched model.Schedule) error {
	if sched == nil {
		sched = model.Schedule{}
	}
	doc, err := json.Marshal(sched)
	if err != nil {
		return &StorageError{Op: "encode", Date: date, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedules (date, tasks, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET tasks = excluded.tasks, updated_at = excluded.updated_at`,
		date, string(doc), time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return &StorageError{Op: "save", Date: date, Err: err}
	}
	return nil
}

func (s *SQLiteStore) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM schedules ORDER BY date ASC`)
	if err != nil {
		return nil, &StorageError{Op: "list dates", Err: err}
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var date string
		if scanErr := rows.Scan(&date); scanErr != nil {
			return nil, &StorageError{Op: "list dates", Err: scanErr}
		}
		out = append(out, date)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list dates", Err: err}
	}
	return out, nil
}
