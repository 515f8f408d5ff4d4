// Command dayschedtui is a terminal client for a running daysched daemon.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daysched/internal/apiclient"
	"github.com/sandeepkv93/daysched/internal/update"
)

func main() {
	addr := flag.String("addr", "http://localhost:5000", "base URL of the daysched daemon")
	flag.Parse()

	client := apiclient.New(*addr)
	program := tea.NewProgram(update.NewModel(client))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dayschedtui failed: %v\n", err)
		os.Exit(1)
	}
}
