package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/daysched/internal/model"
	"github.com/sandeepkv93/daysched/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.keyBindings()
	plain := make([]string, 0, len(bindings))
	helpBindings := make([]key.Binding, 0, len(bindings))
	for _, kb := range bindings {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
		helpBindings = append(helpBindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: helpBindings,
			full:  [][]key.Binding{helpBindings},
		}),
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move task selection"},
		{Key: m.Keys.PrevDay + "/" + m.Keys.NextDay, Action: "previous/next day"},
		{Key: m.Keys.Today, Action: "jump to today"},
		{Key: m.Keys.Refresh, Action: "reload from daemon"},
		{Key: m.Keys.Delete, Action: "delete selected task"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

// PaletteHelp is the markdown cheat sheet for the command grammar, rendered
// with glamour on first toggle of the help panel from the palette.
func PaletteHelp() string {
	return views.RenderMarkdown(`# Commands

- ` + "`add HH:MM-HH:MM name / subtask; subtask`" + ` add a task to the shown day
- ` + "`del <task-id>`" + ` delete a task
- ` + "`show [YYYY-MM-DD]`" + ` switch the shown day (today when omitted)
- ` + "`copy`" + ` copy yesterday's schedule into today
- ` + "`dates`" + ` reload the stored-dates list
`)
}

func reminderSummary(a model.TaskAlerts) string {
	if !a.Enabled {
		return "off"
	}
	return fmt.Sprintf("%dm before, sound=%s vol=%d", a.LeadMinutes, a.Sound, a.Volume)
}
