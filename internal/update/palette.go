package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daysched/internal/apiclient"
	"github.com/sandeepkv93/daysched/internal/commands"
	"github.com/sandeepkv93/daysched/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

// executePaletteCommand parses the palette input and turns it into an API
// call. Mutations run as tea commands so the UI never blocks on the daemon.
func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			teaCmd = m.addTaskCmd(apiclient.AddTaskRequest{
				Date:      m.Date,
				Name:      a.Name,
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
				Subtasks:  a.Subtasks,
			})
			return commands.Result{Message: fmt.Sprintf("adding task: %s", a.Name)}, nil
		},
		Del: func(d commands.DelArgs) (commands.Result, error) {
			teaCmd = m.deleteTaskCmd(d.TaskID)
			return commands.Result{Message: fmt.Sprintf("deleting %s", d.TaskID)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			date := s.Date
			if date == "" {
				date = m.now().Format(model.DateLayout)
			}
			m.Date = date
			teaCmd = m.loadScheduleCmd(date)
			return commands.Result{Message: fmt.Sprintf("showing %s", date)}, nil
		},
		Copy: func() (commands.Result, error) {
			teaCmd = m.copyForwardCmd()
			return commands.Result{Message: "copying yesterday's schedule"}, nil
		},
		Dates: func() (commands.Result, error) {
			teaCmd = m.loadDatesCmd()
			return commands.Result{Message: "reloading stored dates"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, teaCmd
}

func (m Model) addTaskCmd(req apiclient.AddTaskRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		id, err := client.AddTask(ctx, req)
		if err != nil {
			return errMsg{Err: err}
		}
		return actionDoneMsg{Message: fmt.Sprintf("added %s as %s", req.Name, id)}
	}
}

func (m Model) copyForwardCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msg, err := client.CopyForward(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return actionDoneMsg{Message: msg}
	}
}
