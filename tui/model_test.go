package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go-pianolearn/led"
	"go-pianolearn/sequencer"
	"go-pianolearn/theme"
)

type fakeSession struct {
	status  sequencer.Status
	updates chan struct{}
}

func (f *fakeSession) Status() sequencer.Status  { return f.status }
func (f *fakeSession) Updates() <-chan struct{} { return f.updates }

func newTestModel(st sequencer.Status) (Model, chan struct{}) {
	pause := make(chan struct{}, 1)
	m := NewModel(&fakeSession{status: st, updates: make(chan struct{}, 1)}, led.NewStrip(nil, led.Count), nil, theme.New(theme.Default()))
	m.Mode = "learn"
	m.Title = "minuet.mid"
	m.Pause = pause
	return m, pause
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPauseToggle(t *testing.T) {
	m, pause := newTestModel(sequencer.Status{Length: 10, Playing: true})

	next, _ := m.Update(key(" "))
	m = next.(Model)
	if !m.paused {
		t.Fatal("space did not pause")
	}
	select {
	case <-pause:
	default:
		t.Fatal("no signal on the pause channel")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view does not show the pause")
	}

	next, _ = m.Update(key(" "))
	m = next.(Model)
	if m.paused {
		t.Error("second space did not resume")
	}
}

func TestPauseNotPickedUp(t *testing.T) {
	m, _ := newTestModel(sequencer.Status{})
	next, _ := m.Update(key(" "))
	next, _ = next.(Model).Update(key(" "))
	if !next.(Model).paused {
		t.Error("toggle counted although the first signal is still pending")
	}
}

func TestViewWaiting(t *testing.T) {
	m, _ := newTestModel(sequencer.Status{Length: 10, Position: 4, Playing: true, Waiting: true, Expected: []uint8{60, 64}})
	out := m.View()
	for _, want := range []string{"WAIT", "C4 E4", "minuet.mid", "4/10", "repress"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestDoneAndQuit(t *testing.T) {
	m, _ := newTestModel(sequencer.Status{})
	next, _ := m.Update(DoneMsg{Err: errors.New("led transport failure")})
	m = next.(Model)
	if out := m.View(); !strings.Contains(out, "FAILED") || !strings.Contains(out, "led transport failure") {
		t.Errorf("view = %s", out)
	}

	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("view not empty after quit")
	}
}
