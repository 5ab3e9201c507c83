// Package tui holds the interactive kill prompt. It consumes a single
// process snapshot and, on explicit confirmation, sends it a
// termination signal.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benaskins/specto/internal/proc"
	"github.com/benaskins/specto/internal/render"
)

type keyMap struct {
	Kill key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Kill: key.NewBinding(key.WithKeys("k", "K"), key.WithHelp("k", "kill")),
	Quit: key.NewBinding(key.WithKeys("q", "Q", "esc"), key.WithHelp("q", "quit")),
}

// confirmModel is a one-keypress prompt: k confirms the kill, anything
// else cancels.
type confirmModel struct {
	target    proc.Process
	styles    render.Styles
	confirmed bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Kill) {
			m.confirmed = true
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	return fmt.Sprintf("\n%s (PID %d)\n%s",
		m.styles.Good.Render(m.target.Name),
		m.target.PID,
		m.styles.Warn.Render("Press 'k' to kill process, 'q' to quit, or any other key to exit: "))
}

// Confirm shows the kill prompt for p and reports whether the user
// confirmed.
func Confirm(st render.Styles, p proc.Process) (bool, error) {
	m, err := tea.NewProgram(confirmModel{target: p, styles: st}).Run()
	if err != nil {
		return false, fmt.Errorf("running kill prompt: %w", err)
	}
	return m.(confirmModel).confirmed, nil
}
