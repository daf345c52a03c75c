package sequencer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/sync/errgroup"

	"go-pianolearn/debug"
	"go-pianolearn/led"
	"go-pianolearn/score"
	"go-pianolearn/timer"
)

// Learner plays a Sheet like Player, except that notes of the practice
// track are not sent to the connection. Instead playback stops at each
// moment with practice notes until every one of their keys has been struck
// on the input keyboard.
type Learner struct {
	Player
	Input Input

	// Practice is the track index to learn. score.AllTracks learns all.
	Practice int
}

// NewLearner returns a Learner with the default palette.
func NewLearner(t timer.Timer, con Connection, strip *led.Strip, in Input, practice int) *Learner {
	return &Learner{
		Player:   Player{Timer: t, Con: con, Strip: strip, Palette: led.DefaultPalette()},
		Input:    in,
		Practice: practice,
	}
}

// Learn plays sheet, waiting for the player at every practice moment. It
// returns false if the connection stopped playback early. A strip that
// cannot be written ends the session with an error.
func (l *Learner) Learn(sheet score.Sheet) (completed bool, err error) {
	return l.LearnContext(context.Background(), sheet)
}

// LearnContext is Learn that gives up, also in the middle of a wait, once
// ctx is done.
func (l *Learner) LearnContext(ctx context.Context, sheet score.Sheet) (completed bool, err error) {
	if c, ok := l.Timer.(timer.Canceler); ok {
		c.CancelOn(ctx.Done())
	}

	st := newLearnState()
	listening, err := l.Input.Listen(func(msg []byte) { l.handleInput(st, msg) })
	if err != nil {
		return false, fmt.Errorf("listen: %w", err)
	}
	stop := sync.OnceFunc(listening)
	defer stop()

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			st.fail(ctx.Err())
		}
		return nil
	})
	if l.Strip != nil {
		g.Go(func() error {
			if err := l.Strip.Run(gctx); err != nil {
				st.fail(err)
				return err
			}
			return nil
		})
	}

	l.begin(len(sheet))
	defer l.end()

	completed, err = l.run(ctx, sheet, st)
	// No key may touch the strip after the final clear.
	stop()
	cancel()
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	if cerr := l.clearStrip(); cerr != nil && err == nil {
		err = cerr
	}
	return completed, err
}

func (l *Learner) run(ctx context.Context, sheet score.Sheet, st *learnState) (bool, error) {
	var counter uint32
	for i, moment := range sheet {
		if !moment.IsEmpty() {
			if ctx.Err() != nil {
				return false, nil
			}
			l.Timer.Sleep(counter)
			counter = 0
			l.at(i)
			start := time.Now()

			for _, e := range moment.Events {
				switch ev := e.(type) {
				case score.Tempo:
					l.Timer.ChangeTempo(uint32(ev))
				case score.MidiEvent:
					if l.practices(ev) {
						l.expect(st, ev)
						continue
					}
					l.light(ev)
					if !l.Con.Play(ev) {
						debug.Log("learner", "connection stopped playback at moment %d", i)
						return false, nil
					}
				}
			}

			waited, err := l.wait(st)
			if err != nil {
				if ctx.Err() != nil {
					return false, nil
				}
				return false, err
			}
			if waited {
				elapsed := time.Since(start)
				debug.Log("learner", "moment %d satisfied after %v", i, elapsed)
				if c, ok := l.Timer.(timer.Compensator); ok {
					c.Compensate(elapsed)
				}
			}
		}
		counter++
	}
	return true, nil
}

// practices reports whether ev is a practice note the player has to strike.
func (l *Learner) practices(ev score.MidiEvent) bool {
	if l.Practice != score.AllTracks && ev.Track != l.Practice {
		return false
	}
	key, ok := ev.Key()
	return ok && led.InRange(key)
}

// expect turns a practice note into a required key. Note offs only clear
// the LED.
func (l *Learner) expect(st *learnState, ev score.MidiEvent) {
	key, _ := ev.Key()
	_, vel, on := ev.NoteOn()
	if !on || vel == 0 {
		if l.Strip != nil {
			l.Strip.SetKey(key, led.Off)
		}
		return
	}

	role := l.role(ev.Track)
	if st.isPressed(key) {
		role = led.RoleRepress
	}
	st.require(key)
	if l.Strip != nil {
		l.Strip.SetKey(key, l.Palette.Color(role, vel))
	}
}

func (l *Learner) wait(st *learnState) (bool, error) {
	expected := st.expectedKeys()
	if len(expected) > 0 {
		l.update(func(s *Status) {
			s.Waiting = true
			s.Expected = expected
		})
	}
	waited, err := st.wait()
	if len(expected) > 0 {
		l.update(func(s *Status) {
			s.Waiting = false
			s.Expected = nil
		})
	}
	return waited, err
}

// handleInput runs on the input goroutine. It only records state; the LED
// buffer is written by the strip refresh loop.
func (l *Learner) handleInput(st *learnState, raw []byte) {
	msg := midi.Message(raw)
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if !st.press(key) && l.Strip != nil {
			l.Strip.SetKey(key, l.Palette.Color(led.RoleWrong, vel))
		}
	case msg.GetNoteEnd(&ch, &key):
		if !st.release(key) && l.Strip != nil {
			l.Strip.SetKey(key, led.Off)
		}
	default:
		return
	}
	pressed := st.heldKeys()
	l.update(func(s *Status) { s.Pressed = pressed })
}
