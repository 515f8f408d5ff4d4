package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sandeepkv93/daysched/internal/clock"
)

// Schedule holds every task for a single calendar date, keyed by task ID.
// Invariant: no two tasks occupy overlapping [start,end) intervals.
type Schedule map[string]Task

// SortedIDs returns all task IDs in ascending order. Because IDs carry a
// zero-padded sequence suffix, this is also insertion order.
func (s Schedule) SortedIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Conflict reports the name of the first existing task whose interval
// overlaps [start,end). Tasks with unparseable stored times are skipped.
func (s Schedule) Conflict(start, end clock.Minute) (string, bool) {
	for _, id := range s.SortedIDs() {
		task := s[id]
		ts, te, err := task.Times()
		if err != nil {
			continue
		}
		if clock.Overlaps(start, end, ts, te) {
			return task.Name, true
		}
	}
	return "", false
}

// MaxSequence scans existing IDs for the highest numeric suffix. IDs that do
// not match the <date>_<digits> shape are ignored rather than treated as
// errors.
func (s Schedule) MaxSequence() int {
	max := 0
	for id := range s {
		idx := strings.LastIndexByte(id, '_')
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(id[idx+1:])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// NextID mints the identifier for the next task added to this schedule.
func (s Schedule) NextID(date string) string {
	return TaskID(date, s.MaxSequence()+1)
}

// Clone returns a shallow copy so callers can mutate without aliasing the
// loaded schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for id, task := range s {
		out[id] = task
	}
	return out
}
