package sequencer

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"go-pianolearn/led"
	"go-pianolearn/score"
	"go-pianolearn/timer"
)

func TestPlayerCompletes(t *testing.T) {
	sheet := score.Sheet{
		moment(score.Tempo(500_000), on(1, 60, 100)),
		{},
		moment(off(1, 60), on(2, 48, 90)),
		moment(off(2, 48)),
	}
	con := &recorder{}
	mt := &led.MemoryTransport{}
	p := NewPlayer(timer.NewTicker(96), con, led.NewStrip(mt, led.Count))
	p.Hands = score.Hands{Right: 1, Left: 2}

	completed, err := p.Play(sheet)
	if err != nil || !completed {
		t.Fatalf("Play = %v, %v", completed, err)
	}
	if got := len(con.played()); got != 4 {
		t.Errorf("connection got %d events, want 4", got)
	}
	if mt.Frames() < 2 {
		t.Fatalf("strip flushed %d times", mt.Frames())
	}
	if !allOff(mt.Last()) {
		t.Error("strip not cleared at the end")
	}

	st := p.Status()
	if st.Playing || st.Length != 4 || st.Position != 3 {
		t.Errorf("status = %+v", st)
	}
}

func TestPlayerLightsByHand(t *testing.T) {
	mt := &recordingStrip{}
	strip := led.NewStrip(mt, led.Count)
	p := NewPlayer(timer.NewTicker(96), &recorder{}, strip)
	p.Hands = score.Hands{Right: 1, Left: 2}

	if _, err := p.Play(score.Sheet{moment(on(1, 72, 127), on(2, 48, 127), on(3, 30, 0))}); err != nil {
		t.Fatal(err)
	}
	lit := mt.frames[0]
	if lit[led.Index(72)] != p.Palette.Right {
		t.Errorf("right hand key = %v", lit[led.Index(72)])
	}
	if lit[led.Index(48)] != p.Palette.Left {
		t.Errorf("left hand key = %v", lit[led.Index(48)])
	}
	if lit[led.Index(30)] != led.Off {
		t.Errorf("velocity 0 lit a key")
	}
}

// recordingStrip keeps every frame written to it.
type recordingStrip struct {
	frames [][]led.RGB
}

func (r *recordingStrip) WriteFrame(f []led.RGB) error {
	r.frames = append(r.frames, slices.Clone(f))
	return nil
}

func (r *recordingStrip) Close() error { return nil }

func TestPlayerStopsOnRejection(t *testing.T) {
	sheet := score.Sheet{
		moment(on(0, 60, 100), on(0, 64, 100)),
		moment(off(0, 60), off(0, 64)),
	}
	con := &recorder{rejectAt: 1}
	mt := &led.MemoryTransport{}
	p := NewPlayer(timer.NewTicker(96), con, led.NewStrip(mt, led.Count))

	completed, err := p.Play(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if completed {
		t.Error("Play completed after the connection refused")
	}
	if got := len(con.played()); got != 1 {
		t.Errorf("connection got %d events after rejecting, want 1", got)
	}
	if !allOff(mt.Last()) {
		t.Error("strip not cleared after rejection")
	}
}

func TestPlayerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	con := &recorder{}
	completed, err := NewPlayer(timer.NewTicker(96), con, nil).PlayContext(ctx, score.Sheet{moment(on(0, 60, 100))})
	if completed || err != nil {
		t.Errorf("PlayContext = %v, %v; want stopped", completed, err)
	}
	if len(con.played()) != 0 {
		t.Error("cancelled player sent events")
	}
}

func TestPlayerCancelWhilePaused(t *testing.T) {
	pause := make(chan struct{}, 1)
	p := NewPlayer(timer.WithInitialTempo(96, 500_000).Control(pause), &recorder{}, nil)
	sheet := score.Sheet{
		moment(on(0, 60, 100)),
		moment(off(0, 60)),
		moment(on(0, 62, 100)),
	}

	pause <- struct{}{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		completed, _ := p.PlayContext(ctx, sheet)
		done <- completed
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case completed := <-done:
		if completed {
			t.Error("PlayContext completed after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("PlayContext still paused after cancel")
	}
}

func TestPlayerSleepsAccumulatedTicks(t *testing.T) {
	sheet := make(score.Sheet, 8)
	sheet[0] = moment(score.Tempo(400_000))
	sheet[3] = moment(on(0, 60, 1))
	sheet[4] = moment(off(0, 60))
	sheet[7] = moment(on(0, 61, 1))

	ft := &fakeTimer{}
	p := NewPlayer(ft, &recorder{}, nil)
	if completed, err := p.Play(sheet); !completed || err != nil {
		t.Fatalf("Play = %v, %v", completed, err)
	}
	if want := []uint32{0, 3, 1, 3}; !slices.Equal(ft.sleeps, want) {
		t.Errorf("sleeps = %v, want %v", ft.sleeps, want)
	}
	if want := []uint32{400_000}; !slices.Equal(ft.tempos, want) {
		t.Errorf("tempos = %v, want %v", ft.tempos, want)
	}
}

func TestPlayerTransportFailure(t *testing.T) {
	p := NewPlayer(timer.NewTicker(96), &recorder{}, led.NewStrip(&led.MemoryTransport{Fail: errors.New("spi")}, led.Count))
	completed, err := p.Play(score.Sheet{moment(on(0, 60, 100))})
	if completed || !errors.Is(err, led.ErrTransport) {
		t.Errorf("Play = %v, %v; want ErrTransport", completed, err)
	}
}

func TestPlayerUpdates(t *testing.T) {
	p := NewPlayer(timer.NewTicker(96), &recorder{}, nil)
	updates := p.Updates()
	if _, err := p.Play(score.Sheet{moment(on(0, 60, 100))}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-updates:
	default:
		t.Error("no update notification")
	}
}

type silencer struct {
	recorder
	calls int
}

func (s *silencer) AllNotesOff() { s.calls++ }

func TestAllNotesOff(t *testing.T) {
	var a, b recorder
	AllNotesOff(&a)
	AllNotesOff(&b)

	first, second := a.played(), b.played()
	if len(first) != 16*128 {
		t.Fatalf("sent %d messages, want %d", len(first), 16*128)
	}
	for i := range first {
		if !slices.Equal(first[i].Message, second[i].Message) {
			t.Fatalf("message %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
	if want := midi.NoteOffVelocity(0, 0, 127); !slices.Equal(first[0].Message, want) {
		t.Errorf("first message = %v, want %v", first[0].Message, want)
	}
	if want := midi.NoteOffVelocity(0, 1, 127); !slices.Equal(first[1].Message, want) {
		t.Errorf("second message = %v, want key order within a channel", first[1].Message)
	}
	if want := midi.NoteOffVelocity(15, 127, 127); !slices.Equal(first[len(first)-1].Message, want) {
		t.Errorf("last message = %v, want %v", first[len(first)-1].Message, want)
	}

	s := &silencer{}
	AllNotesOff(s)
	if s.calls != 1 || len(s.played()) != 0 {
		t.Errorf("native AllNotesOff not used: calls=%d sent=%d", s.calls, len(s.played()))
	}
}
