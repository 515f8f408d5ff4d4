package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/daysched/internal/scheduler"
)

// Dispatch drains the engine's event channel into the sink until ctx is
// cancelled or the channel closes. A failing sink is logged and swallowed;
// the reminder pipeline keeps running.
func Dispatch(ctx context.Context, events <-chan scheduler.ReminderEvent, sink Notifier, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			n := Render(ev)
			if err := sink.Send(n); err != nil {
				log.Warn("notification failed", "task_id", ev.TaskID, "kind", string(ev.Kind), "error", err)
				continue
			}
			log.Info("reminder fired", "task_id", ev.TaskID, "kind", string(ev.Kind))
		}
	}
}

// Render formats an event the way the notification should read: which task,
// which boundary, how many minutes out, and its subtask checklist.
func Render(ev scheduler.ReminderEvent) Notification {
	var title, verb string
	switch ev.Kind {
	case scheduler.EndingSoon:
		title = fmt.Sprintf("Ending Task - %s", ev.TaskID)
		verb = "end"
	default:
		title = fmt.Sprintf("Upcoming Task - %s", ev.TaskID)
		verb = "start"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task '%s' will %s in %d minutes.", ev.TaskName, verb, ev.LeadMinutes)
	if len(ev.Subtasks) > 0 {
		b.WriteString("\nSubtasks:")
		for _, st := range ev.Subtasks {
			b.WriteString("\n- ")
			b.WriteString(st)
		}
	}

	return Notification{
		Title:  title,
		Body:   b.String(),
		Sound:  ev.Sound,
		Volume: ev.Volume,
	}
}
