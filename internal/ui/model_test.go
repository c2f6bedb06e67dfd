// ABOUTME: Tests for the deck TUI model
// ABOUTME: Tests key handling, coast decay, and render helpers
package ui

import (
	"errors"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeDeck records engine calls for assertions.
type fakeDeck struct {
	scratchCalls []struct {
		touching bool
		value    float64
	}
	released bool

	platterVolume float64
	musicVolume   float64
	sensitivity   float64
	rate          float64

	playErr    error
	played     int
	stopped    int
	nexts      int
	keepStates int
	samples    int
}

func (d *fakeDeck) ScratchActive(touching bool, value float64) {
	d.scratchCalls = append(d.scratchCalls, struct {
		touching bool
		value    float64
	}{touching, value})
}
func (d *fakeDeck) ReleaseTouch()              { d.released = true }
func (d *fakeDeck) SetPlatterVolume(v float64) { d.platterVolume = v }
func (d *fakeDeck) SetMusicVolume(v float64)   { d.musicVolume = v }
func (d *fakeDeck) SetSensitivity(s float64)   { d.sensitivity = s }
func (d *fakeDeck) PlatterVolume() float64     { return d.platterVolume }
func (d *fakeDeck) MusicVolume() float64       { return d.musicVolume }
func (d *fakeDeck) Sensitivity() float64       { return d.sensitivity }
func (d *fakeDeck) PlatterRate() float64       { return d.rate }
func (d *fakeDeck) PlayTrack() error           { d.played++; return d.playErr }
func (d *fakeDeck) StopTrack()                 { d.stopped++ }
func (d *fakeDeck) NextTrackAndPlay() error    { d.nexts++; return nil }
func (d *fakeDeck) NextTrackKeepState() error  { d.keepStates++; return nil }
func (d *fakeDeck) NextSample() error          { d.samples++; return nil }

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "left" {
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	if s == "right" {
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	if s == "up" {
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	if s == "down" {
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScratchKeysFeedGesture(t *testing.T) {
	deck := &fakeDeck{}
	m := NewModel(deck)

	next, _ := m.Update(key("right"))
	m = next.(Model)
	next, _ = m.Update(key("left"))
	m = next.(Model)

	if len(deck.scratchCalls) != 2 {
		t.Fatalf("expected 2 scratch calls, got %d", len(deck.scratchCalls))
	}
	if !deck.scratchCalls[0].touching || deck.scratchCalls[0].value != scratchStep {
		t.Errorf("right nudge: got %+v", deck.scratchCalls[0])
	}
	if !deck.scratchCalls[1].touching || deck.scratchCalls[1].value != -scratchStep {
		t.Errorf("left nudge: got %+v", deck.scratchCalls[1])
	}
	if !m.touching {
		t.Error("expected model touching after nudges")
	}
}

func TestReleaseStartsCoast(t *testing.T) {
	deck := &fakeDeck{rate: 1.5}
	m := NewModel(deck)

	next, _ := m.Update(key("right"))
	m = next.(Model)
	next, cmd := m.Update(key(" "))
	m = next.(Model)

	if !deck.released {
		t.Error("expected ReleaseTouch on space")
	}
	if m.touching {
		t.Error("expected touch cleared")
	}
	if !m.coasting {
		t.Error("expected coasting after release at speed")
	}
	if cmd == nil {
		t.Error("expected a coast tick command")
	}
	if m.coastRate != 1.5 {
		t.Errorf("expected coast seeded from deck rate, got %f", m.coastRate)
	}
}

func TestReleaseWhileSlowStopsImmediately(t *testing.T) {
	deck := &fakeDeck{rate: 0.001}
	m := NewModel(deck)

	next, _ := m.Update(key("right"))
	m = next.(Model)
	next, cmd := m.Update(key(" "))
	m = next.(Model)

	if m.coasting {
		t.Error("expected no coast below the floor")
	}
	if cmd != nil {
		t.Error("expected no tick command")
	}
	last := deck.scratchCalls[len(deck.scratchCalls)-1]
	if last.touching || last.value != 0 {
		t.Errorf("expected final stop call, got %+v", last)
	}
}

func TestReleaseWithoutTouchIgnored(t *testing.T) {
	deck := &fakeDeck{rate: 2.0}
	m := NewModel(deck)

	_, cmd := m.Update(key(" "))
	if deck.released || cmd != nil {
		t.Error("expected release without touch to be a no-op")
	}
}

func TestCoastDecaysToStop(t *testing.T) {
	deck := &fakeDeck{rate: 1.0}
	m := NewModel(deck)

	next, _ := m.Update(key("right"))
	m = next.(Model)
	next, _ = m.Update(key(" "))
	m = next.(Model)
	deck.scratchCalls = nil

	var cmd tea.Cmd
	for i := 0; i < 100 && m.coasting; i++ {
		var nm tea.Model
		nm, cmd = m.Update(coastMsg{})
		m = nm.(Model)
	}

	if m.coasting {
		t.Fatal("coast never stopped")
	}
	if cmd != nil {
		t.Error("expected no tick after stopping")
	}

	// Each intermediate call passes a decayed untouched rate; the last
	// call reports zero.
	if len(deck.scratchCalls) == 0 {
		t.Fatal("expected coast calls")
	}
	prev := 1.0
	for _, c := range deck.scratchCalls[:len(deck.scratchCalls)-1] {
		if c.touching {
			t.Fatal("coast call marked touching")
		}
		if math.Abs(c.value) >= math.Abs(prev) {
			t.Fatalf("coast rate did not decay: %f after %f", c.value, prev)
		}
		prev = c.value
	}
	last := deck.scratchCalls[len(deck.scratchCalls)-1]
	if last.value != 0 {
		t.Errorf("expected final rate 0, got %f", last.value)
	}
}

func TestScratchCancelsCoast(t *testing.T) {
	deck := &fakeDeck{rate: 1.0}
	m := NewModel(deck)

	next, _ := m.Update(key("right"))
	m = next.(Model)
	next, _ = m.Update(key(" "))
	m = next.(Model)
	next, _ = m.Update(key("right"))
	m = next.(Model)

	if m.coasting {
		t.Error("expected new touch to cancel the coast")
	}

	// A stale tick from the cancelled coast must not feed the deck.
	calls := len(deck.scratchCalls)
	next, _ = m.Update(coastMsg{})
	m = next.(Model)
	if len(deck.scratchCalls) != calls {
		t.Error("stale coast tick reached the deck")
	}
}

func TestVolumeKeys(t *testing.T) {
	deck := &fakeDeck{musicVolume: 0.5, platterVolume: 0.5}
	m := NewModel(deck)

	m.Update(key("up"))
	if math.Abs(deck.musicVolume-0.55) > 1e-9 {
		t.Errorf("expected music volume 0.55, got %f", deck.musicVolume)
	}
	m.Update(key("down"))
	if math.Abs(deck.musicVolume-0.5) > 1e-9 {
		t.Errorf("expected music volume back to 0.5, got %f", deck.musicVolume)
	}
	m.Update(key("]"))
	if math.Abs(deck.platterVolume-0.55) > 1e-9 {
		t.Errorf("expected fader 0.55, got %f", deck.platterVolume)
	}
	m.Update(key("["))
	if math.Abs(deck.platterVolume-0.5) > 1e-9 {
		t.Errorf("expected fader back to 0.5, got %f", deck.platterVolume)
	}
}

func TestTransportKeys(t *testing.T) {
	deck := &fakeDeck{}
	m := NewModel(deck)

	m.Update(key("p"))
	m.Update(key("s"))
	m.Update(key("n"))
	m.Update(key("N"))
	m.Update(key("x"))

	if deck.played != 1 || deck.stopped != 1 || deck.nexts != 1 ||
		deck.keepStates != 1 || deck.samples != 1 {
		t.Errorf("transport counts: %+v", deck)
	}
}

func TestCommandErrorShownInView(t *testing.T) {
	deck := &fakeDeck{playErr: errors.New("no playable asset")}
	m := NewModel(deck)
	m.width = 80

	next, _ := m.Update(key("p"))
	m = next.(Model)

	view := m.View()
	if view == "" || m.lastErr == nil {
		t.Fatal("expected error retained after failed command")
	}

	// The next key clears it.
	next, _ = m.Update(key("s"))
	m = next.(Model)
	if m.lastErr != nil {
		t.Error("expected error cleared by the next key")
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(&fakeDeck{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1.0, "██████████"},
		{1.5, "██████████"},
		{-0.2, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		result := renderBar(tt.value, 10)
		if result != tt.expected {
			t.Errorf("renderBar(%f) = %q, expected %q", tt.value, result, tt.expected)
		}
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}
