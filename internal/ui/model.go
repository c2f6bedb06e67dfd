// ABOUTME: Bubbletea model for the scratch deck TUI
// ABOUTME: Maps keys to deck gestures and renders playback state
package ui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Deck is the engine surface the TUI drives. Satisfied by
// *engine.Engine; tests substitute a fake.
type Deck interface {
	ScratchActive(touching bool, value float64)
	ReleaseTouch()
	SetPlatterVolume(v float64)
	SetMusicVolume(v float64)
	SetSensitivity(s float64)
	PlatterVolume() float64
	MusicVolume() float64
	Sensitivity() float64
	PlatterRate() float64
	PlayTrack() error
	StopTrack()
	NextTrackAndPlay() error
	NextTrackKeepState() error
	NextSample() error
}

const (
	// scratchStep is the angular delta fed per nudge key, in degrees.
	scratchStep = 12.0

	// coastDecay multiplies the rate each coast tick after release.
	coastDecay = 0.82

	// coastFloor is where a coasting platter is considered stopped.
	coastFloor = 0.01

	coastInterval = 40 * time.Millisecond

	volumeStep      = 0.05
	sensitivityStep = 0.01
)

// coastMsg drives the post-release spin-down.
type coastMsg struct{}

// Model represents the TUI state
type Model struct {
	deck Deck

	// Scratch
	touching  bool
	coasting  bool
	coastRate float64

	// Last command error, shown until the next key
	lastErr error

	// Dimensions
	width  int
	height int
}

// NewModel creates a TUI model driving the given deck.
func NewModel(deck Deck) Model {
	return Model{deck: deck}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case coastMsg:
		return m.handleCoast()
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastErr = nil

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left":
		return m.scratch(-scratchStep)
	case "right":
		return m.scratch(scratchStep)
	case " ":
		return m.release()

	case "up":
		m.deck.SetMusicVolume(m.deck.MusicVolume() + volumeStep)
	case "down":
		m.deck.SetMusicVolume(m.deck.MusicVolume() - volumeStep)
	case "]":
		m.deck.SetPlatterVolume(m.deck.PlatterVolume() + volumeStep)
	case "[":
		m.deck.SetPlatterVolume(m.deck.PlatterVolume() - volumeStep)
	case "+", "=":
		m.deck.SetSensitivity(m.deck.Sensitivity() + sensitivityStep)
	case "-":
		m.deck.SetSensitivity(m.deck.Sensitivity() - sensitivityStep)

	case "p":
		m.lastErr = m.deck.PlayTrack()
	case "s":
		m.deck.StopTrack()
	case "n":
		m.lastErr = m.deck.NextTrackAndPlay()
	case "N":
		m.lastErr = m.deck.NextTrackKeepState()
	case "x":
		m.lastErr = m.deck.NextSample()
	}

	return m, nil
}

// scratch feeds one angular nudge while "touching" the platter.
func (m Model) scratch(delta float64) (tea.Model, tea.Cmd) {
	m.touching = true
	m.coasting = false
	m.deck.ScratchActive(true, delta)
	return m, nil
}

// release lets go of the platter and starts the coast spin-down from
// the rate the scratch left behind.
func (m Model) release() (tea.Model, tea.Cmd) {
	if !m.touching {
		return m, nil
	}
	m.touching = false
	m.coastRate = m.deck.PlatterRate()
	m.deck.ReleaseTouch()

	if math.Abs(m.coastRate) < coastFloor {
		m.deck.ScratchActive(false, 0)
		return m, nil
	}
	m.coasting = true
	return m, coastTick()
}

// handleCoast decays the rate one step and reschedules until the
// platter has effectively stopped.
func (m Model) handleCoast() (tea.Model, tea.Cmd) {
	if !m.coasting || m.touching {
		return m, nil
	}

	m.coastRate *= coastDecay
	if math.Abs(m.coastRate) < coastFloor {
		m.coasting = false
		m.deck.ScratchActive(false, 0)
		return m, nil
	}
	m.deck.ScratchActive(false, m.coastRate)
	return m, coastTick()
}

func coastTick() tea.Cmd {
	return tea.Tick(coastInterval, func(time.Time) tea.Msg {
		return coastMsg{}
	})
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.renderHeader()
	s += m.renderPlatter()
	s += m.renderMixer()
	if m.lastErr != nil {
		s += fmt.Sprintf("│ Error: %-45s │\n", truncate(m.lastErr.Error(), 45))
	}
	s += m.renderHelp()
	return s
}

// renderHeader renders the deck banner and touch state
func (m Model) renderHeader() string {
	state := "idle"
	switch {
	case m.touching:
		state = "scratching"
	case m.coasting:
		state = "coasting"
	}

	return fmt.Sprintf(`┌─ Platter Deck ───────────────────────────────────────┐
│ Hand:   %-45s │
├──────────────────────────────────────────────────────┤
`, state)
}

// renderPlatter renders the rate readout
func (m Model) renderPlatter() string {
	rate := m.deck.PlatterRate()
	return fmt.Sprintf("│ Rate:   %+6.2fx  Sensitivity: %.3f%-17s │\n",
		rate, m.deck.Sensitivity(), "")
}

// renderMixer renders the fader and music volume bars
func (m Model) renderMixer() string {
	fader := m.deck.PlatterVolume()
	music := m.deck.MusicVolume()
	return fmt.Sprintf("│ Fader:  [%s] %3.0f%%%-25s │\n"+
		"│ Music:  [%s] %3.0f%%%-25s │\n",
		renderBar(fader, 10), fader*100, "",
		renderBar(music, 10), music*100, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ ←/→:Scratch  space:Release  [/]:Fader  ↑/↓:Music    │
│ p:Play  s:Stop  n:Next  N:Next(keep)  x:Sample q:Quit│
└──────────────────────────────────────────────────────┘
`
}

// Utility functions
func renderBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
