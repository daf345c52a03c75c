package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianolearn/led"
	"go-pianolearn/theme"
)

// KeyState is what the keyboard widget shows for one key
type KeyState struct {
	LED  led.RGB // colour on the strip
	Held bool    // down on the keyboard
	Want bool    // the learner waits for it
}

// Keyboard collects key states for rendering
type Keyboard [led.HighestKey + 1]KeyState

// NewKeyboard fills a Keyboard from a strip snapshot and the learner's key sets
func NewKeyboard(frame []led.RGB, held, want []uint8) *Keyboard {
	var kb Keyboard
	for key := uint8(led.LowestKey); key <= led.HighestKey; key++ {
		if i := led.Index(key); i < len(frame) {
			kb[key].LED = frame[i]
		}
	}
	for _, k := range held {
		if led.InRange(k) {
			kb[k].Held = true
		}
	}
	for _, k := range want {
		if led.InRange(k) {
			kb[k].Want = true
		}
	}
	return &kb
}

func isBlack(key uint8) bool {
	switch key % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// RenderKeyboard renders the 88 keys on one line, lowest key first
func RenderKeyboard(th *theme.Theme, kb *Keyboard) string {
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	fg := lipgloss.NewStyle().Foreground(th.FG())
	want := lipgloss.NewStyle().Foreground(th.Warning())
	held := lipgloss.NewStyle().Foreground(th.Success())

	var out strings.Builder
	for key := uint8(led.LowestKey); key <= led.HighestKey; key++ {
		s := kb[key]
		switch {
		case s.Want && s.Held:
			out.WriteString(held.Render(string(th.Symbols.KeyWant)))
		case s.Want:
			out.WriteString(want.Render(string(th.Symbols.KeyWant)))
		case s.Held:
			out.WriteString(held.Render(string(th.Symbols.KeyHeld)))
		case s.LED != led.Off:
			out.WriteString(RenderLED(th, s.LED))
		case isBlack(key):
			out.WriteString(dim.Render(string(th.Symbols.KeyBlack)))
		default:
			out.WriteString(fg.Render(string(th.Symbols.KeyWhite)))
		}
	}
	return out.String()
}

// RenderLED renders a single LED
func RenderLED(th *theme.Theme, color led.RGB) string {
	if color == led.Off {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.LEDOff))
	}
	style := lipgloss.NewStyle().Foreground(theme.RGBColor(color))
	return style.Render(string(th.Symbols.LEDOn))
}

// RenderProgress renders a bar of width cells with pos of length done
func RenderProgress(th *theme.Theme, pos, length, width int) string {
	done := 0
	if length > 0 {
		done = pos * width / length
	}
	done = min(max(done, 0), width)
	bar := lipgloss.NewStyle().Foreground(th.Accent()).Render(strings.Repeat(string(th.Symbols.BarDone), done))
	rest := lipgloss.NewStyle().Foreground(th.Muted()).Render(strings.Repeat(string(th.Symbols.BarTodo), width-done))
	return bar + rest
}

// RenderLegendItem renders a single legend item: "● Name - description"
func RenderLegendItem(th *theme.Theme, color led.RGB, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderLED(th, color), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of a key, middle C is C4
func NoteName(key uint8) string {
	return fmt.Sprintf("%s%d", noteNames[key%12], int(key)/12-1)
}

// NoteNames joins the names of keys with spaces
func NoteNames(keys []uint8) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = NoteName(k)
	}
	return strings.Join(names, " ")
}
