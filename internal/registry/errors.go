package registry

import (
	"fmt"
	"strings"
)

// ValidationError rejects task input before any schedule state is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "registry: invalid task: " + e.Reason
}

// ConflictError reports an interval overlap and names the task already
// occupying the slot.
type ConflictError struct {
	TaskName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("registry: time conflict with task: %s", e.TaskName)
}

// NotFoundError reports an unknown task ID along with every ID that does
// exist on the owning date.
type NotFoundError struct {
	TaskID    string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("registry: task %q not found", e.TaskID)
	}
	return fmt.Sprintf("registry: task %q not found (available: %s)", e.TaskID, strings.Join(e.Available, ", "))
}

// EmptySourceError reports a copy whose source date has no tasks.
type EmptySourceError struct {
	Date string
}

func (e *EmptySourceError) Error() string {
	return fmt.Sprintf("registry: no schedule found for date %s", e.Date)
}
