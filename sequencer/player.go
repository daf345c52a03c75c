package sequencer

import (
	"context"

	"go-pianolearn/debug"
	"go-pianolearn/led"
	"go-pianolearn/score"
	"go-pianolearn/timer"
)

// Player plays a Sheet to a Connection, lighting the key of every sounding
// note on the strip.
type Player struct {
	Timer   timer.Timer
	Con     Connection
	Strip   *led.Strip // optional
	Palette led.Palette
	Hands   score.Hands

	progress
}

// NewPlayer returns a Player with the default palette.
func NewPlayer(t timer.Timer, con Connection, strip *led.Strip) *Player {
	return &Player{
		Timer:   t,
		Con:     con,
		Strip:   strip,
		Palette: led.DefaultPalette(),
	}
}

// Play plays sheet from the start. It returns false if the connection
// stopped playback early. The strip is cleared when Play returns; an error
// means the strip could not be written.
func (p *Player) Play(sheet score.Sheet) (completed bool, err error) {
	return p.PlayContext(context.Background(), sheet)
}

// PlayContext is Play that stops before the next moment once ctx is done.
// A cancelled session counts as stopped early, not as an error.
func (p *Player) PlayContext(ctx context.Context, sheet score.Sheet) (completed bool, err error) {
	if c, ok := p.Timer.(timer.Canceler); ok {
		c.CancelOn(ctx.Done())
	}
	p.begin(len(sheet))
	defer func() {
		if cerr := p.clearStrip(); cerr != nil && err == nil {
			err = cerr
		}
		p.end()
	}()

	var counter uint32
	for i, moment := range sheet {
		if !moment.IsEmpty() {
			if ctx.Err() != nil {
				return false, nil
			}
			p.Timer.Sleep(counter)
			counter = 0
			p.at(i)

			for _, e := range moment.Events {
				switch ev := e.(type) {
				case score.Tempo:
					p.Timer.ChangeTempo(uint32(ev))
				case score.MidiEvent:
					p.light(ev)
					if !p.Con.Play(ev) {
						debug.Log("player", "connection stopped playback at moment %d", i)
						return false, nil
					}
				}
			}
			if err := p.flush(); err != nil {
				return false, err
			}
		}
		counter++
	}
	return true, nil
}

// role picks the palette role of a note from its track.
func (p *Player) role(track int) led.Role {
	if track == p.Hands.Right {
		return led.RoleRight
	}
	return led.RoleLeft
}

// light mirrors a note on or off onto the strip buffer.
func (p *Player) light(ev score.MidiEvent) {
	if p.Strip == nil {
		return
	}
	if key, vel, ok := ev.NoteOn(); ok {
		p.Strip.SetKey(key, p.Palette.Color(p.role(ev.Track), vel))
		return
	}
	if key, _, ok := ev.NoteOff(); ok {
		p.Strip.SetKey(key, led.Off)
	}
}

func (p *Player) flush() error {
	if p.Strip == nil {
		return nil
	}
	return p.Strip.Flush()
}

func (p *Player) clearStrip() error {
	if p.Strip == nil {
		return nil
	}
	p.Strip.Clear()
	return p.Strip.Flush()
}

func (p *Player) begin(length int) {
	p.update(func(s *Status) {
		*s = Status{Length: length, Playing: true}
	})
}

func (p *Player) at(i int) {
	p.update(func(s *Status) { s.Position = i })
}

func (p *Player) end() {
	p.update(func(s *Status) {
		s.Playing = false
		s.Waiting = false
		s.Expected = nil
	})
}
