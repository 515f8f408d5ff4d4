package update

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daysched/internal/model"
	"github.com/sandeepkv93/daysched/internal/views"
)

const requestTimeout = 10 * time.Second

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadScheduleCmd(m.Date),
		m.loadDatesCmd(),
		m.refreshTickCmd(),
		m.loadSpinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleGlobalKey(typed)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case scheduleLoadedMsg:
		m.loading = false
		// A stale reload can land after the user already moved days.
		if typed.Date != m.Date {
			return m, nil
		}
		m.Schedule = typed.Schedule
		m.LastError = nil
		m.syncBubbleData()
		return m, nil

	case datesLoadedMsg:
		m.Dates = typed.Dates
		return m, nil

	case actionDoneMsg:
		m.Status = StatusBar{Text: typed.Message, IsError: false}
		return m, tea.Batch(m.loadScheduleCmd(m.Date), m.loadDatesCmd())

	case errMsg:
		m.loading = false
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.loadScheduleCmd(m.Date), m.refreshTickCmd())
	}

	return m, nil
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case "j", "down":
		m.moveSelection(1)
		m.syncBubbleData()
		return m, nil
	case "k", "up":
		m.moveSelection(-1)
		m.syncBubbleData()
		return m, nil
	case m.Keys.Refresh:
		m.loading = true
		m.Status = StatusBar{Text: "refreshing", IsError: false}
		return m, tea.Batch(m.loadScheduleCmd(m.Date), m.loadDatesCmd(), m.loadSpinner.Tick)
	case m.Keys.PrevDay:
		m.shiftDate(-1)
		return m, m.loadScheduleCmd(m.Date)
	case m.Keys.NextDay:
		m.shiftDate(1)
		return m, m.loadScheduleCmd(m.Date)
	case m.Keys.Today:
		m.Date = m.now().Format(model.DateLayout)
		return m, m.loadScheduleCmd(m.Date)
	case m.Keys.Delete:
		if m.SelectedTaskID == "" {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		return m, m.deleteTaskCmd(m.SelectedTaskID)
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	status := m.Status.Text
	if m.Status.IsError && status != "" {
		status = "error: " + status
	}
	if m.loading {
		status = m.loadSpinner.View() + " loading  " + status
	}

	side := views.RenderDatesPanel(views.DatesPanelData{Dates: m.Dates, Selected: m.Date})
	if m.SelectedTaskID != "" {
		task := m.Schedule[m.SelectedTaskID]
		side += "\n\n" + views.RenderTaskDetail(views.TaskDetailData{
			TaskID:    m.SelectedTaskID,
			Name:      task.Name,
			StartTime: task.StartTime,
			EndTime:   task.EndTime,
			Subtasks:  task.Subtasks,
			Reminders: reminderSummary(task.Alerts(model.DefaultReminderLead)),
		})
	}
	if palette := views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()); palette != "" {
		side += "\n\n" + palette
	}
	if m.HelpVisible {
		side += "\n\n" + m.renderHelpView() + "\n" + PaletteHelp()
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("daysched | %s | %d task(s)", m.Date, len(m.Schedule)),
		SchedulePane: views.RenderSchedulePanel(m.schedulePanelData()),
		SidePane:     side,
		StatusLine:   status,
		Footer: fmt.Sprintf("keys: j/k move | %s/%s day | %s today | %s refresh | %s delete | / cmd | %s help | %s quit",
			m.Keys.PrevDay, m.Keys.NextDay, m.Keys.Today, m.Keys.Refresh, m.Keys.Delete, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) schedulePanelData() views.SchedulePanelData {
	ids := m.Schedule.SortedIDs()
	rows := make([]views.ScheduleRowData, 0, len(ids))
	for _, id := range ids {
		task := m.Schedule[id]
		rows = append(rows, views.ScheduleRowData{
			TaskID:    id,
			Name:      task.Name,
			StartTime: task.StartTime,
			EndTime:   task.EndTime,
			Subtasks:  task.Subtasks,
		})
	}
	return views.SchedulePanelData{
		Date:       m.Date,
		TableView:  m.scheduleTable.View(),
		Rows:       rows,
		SelectedID: m.SelectedTaskID,
	}
}

func (m Model) loadScheduleCmd(date string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sched, err := client.Schedule(ctx, date)
		if err != nil {
			return errMsg{Err: err}
		}
		return scheduleLoadedMsg{Date: date, Schedule: sched}
	}
}

func (m Model) loadDatesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		dates, err := client.Dates(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return datesLoadedMsg{Dates: dates}
	}
}

func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := client.DeleteTask(ctx, taskID); err != nil {
			return errMsg{Err: err}
		}
		return actionDoneMsg{Message: fmt.Sprintf("deleted %s", taskID)}
	}
}

func (m Model) refreshTickCmd() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg { return refreshTickMsg{} })
}
