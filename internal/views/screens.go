package views

import (
	"fmt"
	"strings"
)

type ScheduleRowData struct {
	TaskID    string
	Name      string
	StartTime string
	EndTime   string
	Subtasks  []string
}

type SchedulePanelData struct {
	Date       string
	TableView  string
	Rows       []ScheduleRowData
	SelectedID string
}

type DatesPanelData struct {
	Dates    []string
	Selected string
}

type TaskDetailData struct {
	TaskID    string
	Name      string
	StartTime string
	EndTime   string
	Subtasks  []string
	Reminders string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "schedule for %s:\n", data.Date)
	b.WriteString(data.TableView)
	if len(data.Rows) == 0 {
		b.WriteString("\n(no tasks yet; press / and type: add HH:MM-HH:MM name)")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		if row.TaskID != data.SelectedID || len(row.Subtasks) == 0 {
			continue
		}
		b.WriteString("\nsubtasks of " + row.TaskID + ":\n")
		for _, st := range row.Subtasks {
			b.WriteString("- " + st + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderDatesPanel(data DatesPanelData) string {
	if len(data.Dates) == 0 {
		return "dates:\n(none stored)"
	}
	var b strings.Builder
	b.WriteString("dates:\n")
	for _, d := range data.Dates {
		marker := "  "
		if d == data.Selected {
			marker = "> "
		}
		b.WriteString(marker + d + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.TaskID == "" {
		return "task:\n(no selection)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "task %s:\n", data.TaskID)
	fmt.Fprintf(&b, "%s  %s-%s\n", data.Name, data.StartTime, data.EndTime)
	if len(data.Subtasks) > 0 {
		b.WriteString("subtasks:\n")
		for _, st := range data.Subtasks {
			b.WriteString("- " + st + "\n")
		}
	}
	if data.Reminders != "" {
		b.WriteString("reminders: " + data.Reminders + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command> %s_", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	for _, line := range data.Bindings {
		b.WriteString(line + "\n")
	}
	if strings.TrimSpace(data.HelpView) != "" {
		b.WriteString(data.HelpView)
	}
	return strings.TrimSpace(b.String())
}
