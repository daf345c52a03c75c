package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianolearn/led"
	"go-pianolearn/midi"
	"go-pianolearn/sequencer"
	"go-pianolearn/theme"
	"go-pianolearn/widgets"
)

// Session is a running Player or Learner
type Session interface {
	Status() sequencer.Status
	Updates() <-chan struct{}
}

type Model struct {
	Session   Session
	Strip     *led.Strip          // may be nil
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme
	Palette   led.Palette

	Title    string
	Mode     string
	Duration time.Duration

	// Pause toggles the pausable timer; nil disables pausing.
	Pause chan<- struct{}

	paused   bool
	quitting bool
	done     *DoneMsg
	device   string // last device event
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// DoneMsg is sent when the session ends
type DoneMsg struct {
	Completed bool
	Err       error
}

func NewModel(session Session, strip *led.Strip, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Session:   session,
		Strip:     strip,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Palette:   led.DefaultPalette(),
	}
}

func ListenForUpdates(session Session) tea.Cmd {
	return func() tea.Msg {
		<-session.Updates()
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Session)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case " ", "p":
			if m.Pause != nil && m.done == nil {
				select {
				case m.Pause <- struct{}{}:
					m.paused = !m.paused
				default:
					// previous toggle not picked up yet
				}
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Session)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		m.device = fmt.Sprintf("%s %s", event.Name, event.Type)
		return m, ListenForDevices(m.DeviceMgr)

	case DoneMsg:
		m.done = &msg
		m.paused = false
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Session.Status()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	state := "PLAY"
	switch {
	case m.done != nil && m.done.Err != nil:
		state = "FAILED"
	case m.done != nil && m.done.Completed:
		state = "DONE"
	case m.done != nil:
		state = "STOPPED"
	case m.paused:
		state = "PAUSED"
	case st.Waiting:
		state = "WAIT"
	}

	header := headerStyle.Render(fmt.Sprintf("go-pianolearn  %s  %s  %s", strings.ToUpper(m.Mode), state, m.Title))

	progress := fmt.Sprintf("%s %d/%d", widgets.RenderProgress(m.Theme, st.Position, st.Length, 60), st.Position, st.Length)
	if m.Duration > 0 {
		progress += dimStyle.Render(fmt.Sprintf("  %s", m.Duration.Round(time.Second)))
	}

	var frame []led.RGB
	if m.Strip != nil {
		frame = m.Strip.Snapshot()
	}
	keyboard := widgets.RenderKeyboard(m.Theme, widgets.NewKeyboard(frame, st.Pressed, st.Expected))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(progress)
	out.WriteString("\n\n")
	out.WriteString(keyboard)
	out.WriteString("\n")

	if st.Waiting {
		out.WriteString(warnStyle.Render("play: " + widgets.NoteNames(st.Expected)))
	}
	out.WriteString("\n\n")

	if m.Strip != nil {
		out.WriteString(m.legend())
		out.WriteString("\n\n")
	}

	if m.done != nil && m.done.Err != nil {
		out.WriteString(warnStyle.Render(m.done.Err.Error()))
		out.WriteString("\n")
	}
	if m.device != "" {
		out.WriteString(dimStyle.Render(m.device))
		out.WriteString("\n")
	}

	// Help line
	help := "q:quit"
	if m.Pause != nil {
		help = "space:pause  " + help
	}
	out.WriteString(dimStyle.Render(help))

	return out.String()
}

func (m Model) legend() string {
	items := []string{
		widgets.RenderLegendItem(m.Theme, m.Palette.Color(led.RoleRight, 127), "right", "right hand"),
		widgets.RenderLegendItem(m.Theme, m.Palette.Color(led.RoleLeft, 127), "left", "left hand and accompaniment"),
	}
	if m.Mode == "learn" {
		items = append(items,
			widgets.RenderLegendItem(m.Theme, m.Palette.Color(led.RoleRepress, 127), "repress", "release and strike again"),
			widgets.RenderLegendItem(m.Theme, m.Palette.Color(led.RoleWrong, 127), "wrong", "key not in the score"),
		)
	}
	return strings.Join(items, "\n")
}
