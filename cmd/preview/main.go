package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/njyeung/pioauth/account"
	"github.com/njyeung/pioauth/auth"
	"github.com/njyeung/pioauth/tui"
)

const demoAccount = "demo@platformio.org"

// Runs the dialog against a simulated account service with an in-memory
// state file. Pass register or forgot to open that form.
func main() {
	mode := auth.ModeLogin
	if len(os.Args) > 1 {
		m, err := auth.ParseMode(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		mode = m
	}

	store, err := account.NewFileStore(afero.NewMemMapFs(), account.StateFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := store.SetUsername(demoAccount); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runner := account.NewDemoRunner(1500*time.Millisecond, demoAccount)
	hint := fmt.Sprintf("preview: account calls are simulated, log in as %s / %s", demoAccount, account.DemoPassword)

	m := tui.NewModel(context.Background(), runner, store, tui.Config{Mode: mode, Preview: hint})
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if fm, ok := final.(tui.Model); ok && fm.LoggedIn() {
		fmt.Printf("Logged in as %s\n", store.Username())
	}
}
