// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the scratch deck UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits.
func Run(deck Deck) error {
	p := tea.NewProgram(NewModel(deck), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
