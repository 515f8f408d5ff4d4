// Package update holds the bubbletea model for the daysched TUI. All state
// lives on the daemon; the model is a cache of one day's schedule plus the
// list of stored dates, refreshed over the HTTP API.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/daysched/internal/apiclient"
	"github.com/sandeepkv93/daysched/internal/model"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Refresh string
	PrevDay string
	NextDay string
	Today   string
	Delete  string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Date           string
	Schedule       model.Schedule
	Dates          []string
	SelectedTaskID string
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	client       *apiclient.Client
	now          func() time.Time
	refreshEvery time.Duration

	scheduleTable table.Model
	commandInput  textinput.Model
	loadSpinner   spinner.Model
	helpModel     help.Model
	loading       bool
}

type scheduleLoadedMsg struct {
	Date     string
	Schedule model.Schedule
}

type datesLoadedMsg struct {
	Dates []string
}

type actionDoneMsg struct {
	Message string
}

type errMsg struct {
	Err error
}

type refreshTickMsg struct{}

func NewModel(client *apiclient.Client) Model {
	m := Model{
		Schedule:     model.Schedule{},
		client:       client,
		now:          time.Now,
		refreshEvery: 30 * time.Second,
		Keys: GlobalKeyMap{
			Refresh: "r",
			PrevDay: "[",
			NextDay: "]",
			Today:   "t",
			Delete:  "x",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.Date = m.now().Format(model.DateLayout)
	m.loading = true
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	input := textinput.New()
	input.Placeholder = "add HH:MM-HH:MM name / subtask; subtask"
	input.CharLimit = 200
	input.Width = 48
	m.commandInput = input

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.loadSpinner = sp

	m.scheduleTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 16},
			{Title: "Start", Width: 6},
			{Title: "End", Width: 6},
			{Title: "Task", Width: 24},
		}),
		table.WithHeight(12),
	)

	m.helpModel = help.New()
}

// syncBubbleData rebuilds the table rows from the schedule cache and keeps
// the cursor pinned to the selected task id across reloads.
func (m *Model) syncBubbleData() {
	ids := m.Schedule.SortedIDs()
	rows := make([]table.Row, 0, len(ids))
	selected := -1
	for i, id := range ids {
		task := m.Schedule[id]
		rows = append(rows, table.Row{id, task.StartTime, task.EndTime, task.Name})
		if id == m.SelectedTaskID {
			selected = i
		}
	}
	m.scheduleTable.SetRows(rows)
	if len(ids) == 0 {
		m.SelectedTaskID = ""
		return
	}
	if selected < 0 {
		selected = 0
		m.SelectedTaskID = ids[0]
	}
	m.scheduleTable.SetCursor(selected)
}

func (m *Model) moveSelection(delta int) {
	ids := m.Schedule.SortedIDs()
	if len(ids) == 0 {
		return
	}
	cur := 0
	for i, id := range ids {
		if id == m.SelectedTaskID {
			cur = i
			break
		}
	}
	cur += delta
	if cur < 0 {
		cur = 0
	}
	if cur > len(ids)-1 {
		cur = len(ids) - 1
	}
	m.SelectedTaskID = ids[cur]
}

// shiftDate moves the viewed day within the known dates list, falling back
// to plain date arithmetic when the list has no neighbor.
func (m *Model) shiftDate(delta int) {
	if len(m.Dates) > 0 {
		idx := -1
		for i, d := range m.Dates {
			if d == m.Date {
				idx = i
				break
			}
		}
		if idx >= 0 {
			next := idx + delta
			if next >= 0 && next < len(m.Dates) {
				m.Date = m.Dates[next]
				return
			}
		}
	}
	day, err := time.ParseInLocation(model.DateLayout, m.Date, time.Local)
	if err != nil {
		day = m.now()
	}
	m.Date = day.AddDate(0, 0, delta).Format(model.DateLayout)
}
