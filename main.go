package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"go-pianolearn/config"
	"go-pianolearn/debug"
	"go-pianolearn/led"
	"go-pianolearn/midi"
	"go-pianolearn/score"
	"go-pianolearn/sequencer"
	"go-pianolearn/theme"
	"go-pianolearn/timer"
	"go-pianolearn/tui"
)

type options struct {
	configPath string
	list       bool
	useTUI     bool
	track      int
	file       string
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pianolearn"})

	cfg, opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Fatal("bad arguments", "err", err)
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			logger.Warn("debug log disabled", "err", err)
		}
		defer debug.Disable()
	}

	if opts.list {
		if err := listDevices(); err != nil {
			logger.Fatal("listing devices", "err", err)
		}
		return
	}

	if err := run(cfg, opts, logger); err != nil {
		logger.Fatal("session failed", "err", err)
	}
}

// parseFlags loads the config and applies the flags that were set on top.
func parseFlags(args []string) (*config.Config, options, error) {
	var opts options
	fs := flag.NewFlagSet("go-pianolearn", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: go-pianolearn [flags] file.mid\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/go-pianolearn/config.yaml)")
	fs.BoolVar(&opts.list, "list", false, "list MIDI and serial ports and exit")
	fs.BoolVar(&opts.useTUI, "tui", true, "show the session screen")
	fs.IntVar(&opts.track, "track", -1, "practice this track index, overrides -hand (0 practices all)")
	in := fs.String("in", "", "MIDI input port, index or name")
	out := fs.String("out", "", "MIDI output port, index or name")
	hand := fs.String("hand", "", "hand to practice: right, left or both")
	mode := fs.String("mode", "", "play, learn or demo")
	serial := fs.String("serial", "", "serial device of the LED strip")
	baud := fs.Int("baud", 0, "serial baud rate")
	speed := fs.Float64("speed", 0, "playback speed, 1 is normal")
	dbg := fs.Bool("debug", false, "write a debug log")

	if err := fs.Parse(args); err != nil {
		return nil, opts, err
	}

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = *in
		case "out":
			cfg.Output = *out
		case "hand":
			cfg.Hand = *hand
		case "mode":
			cfg.Mode = *mode
		case "serial":
			cfg.LED.Serial = *serial
		case "baud":
			cfg.LED.Baud = *baud
		case "speed":
			cfg.Speed = *speed
		case "debug":
			cfg.Debug = *dbg
		}
	})

	if !opts.list {
		if fs.NArg() != 1 {
			fs.Usage()
			return nil, opts, errors.New("expected exactly one MIDI file")
		}
		opts.file = fs.Arg(0)
	}
	return cfg, opts, nil
}

func listDevices() error {
	ins, err := midi.InPorts()
	if err != nil {
		return err
	}
	outs, err := midi.OutPorts()
	if err != nil {
		return err
	}

	fmt.Println("MIDI inputs:")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("MIDI outputs:")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p)
	}

	ports, err := led.SerialPorts()
	if err != nil {
		return err
	}
	fmt.Println("Serial ports:")
	for _, p := range ports {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

// session is a Player or Learner ready to run.
type session struct {
	tui.Session
	run func(ctx context.Context) (bool, error)
}

// sessionLength is how long sheet plays at speed. Tempo events mutate a
// timer, so it measures with a throwaway one.
func sessionLength(timing score.Timing, sheet score.Sheet, speed float64) (time.Duration, error) {
	measure, err := timer.New(timing)
	if err != nil {
		return 0, err
	}
	if tk, ok := measure.(*timer.Ticker); ok {
		tk.Speed = speed
	}
	return measure.Duration(sheet), nil
}

func run(cfg *config.Config, opts options, logger *log.Logger) error {
	sc, err := score.ReadFile(opts.file)
	if err != nil {
		return err
	}
	sheet := sc.Sheet()

	length, err := sessionLength(sc.Timing, sheet, cfg.Speed)
	if err != nil {
		return err
	}

	t, err := timer.New(sc.Timing)
	if err != nil {
		return err
	}
	var pause chan struct{}
	if tk, ok := t.(*timer.Ticker); ok {
		tk.Speed = cfg.Speed
		if opts.useTUI {
			pause = make(chan struct{}, 1)
			t = tk.Control(pause)
		}
	}

	h, err := score.ParseHand(cfg.Hand)
	if err != nil {
		return err
	}
	hands := score.Classify(sc.Tracks)
	practice := hands.Practice(h)
	if opts.track >= 0 {
		practice = opts.track
	}
	logger.Info("score loaded",
		"file", opts.file, "format", sc.Format, "timing", sc.Timing,
		"tracks", len(sc.Tracks), "right", hands.Right, "left", hands.Left,
		"practice", practice, "length", length.Round(time.Second))

	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	var transport led.Transport
	if cfg.LED.Serial != "" {
		st, err := led.OpenSerial(cfg.LED.Serial, cfg.LED.Baud)
		if err != nil {
			return err
		}
		transport = st
	}
	strip := led.NewStrip(transport, led.Count)
	if cfg.LED.FPS > 0 {
		strip.FPS = cfg.LED.FPS
	}
	defer strip.Close()

	outPort, err := midi.FindOut(cfg.Output)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	output, err := midi.OpenOutput(outPort)
	if err != nil {
		return err
	}
	defer output.Close()
	defer sequencer.AllNotesOff(output)

	var sess session
	switch cfg.Mode {
	case "play":
		p := sequencer.NewPlayer(t, output, strip)
		p.Palette, p.Hands = palette, hands
		sess = session{p, func(ctx context.Context) (bool, error) { return p.PlayContext(ctx, sheet) }}

	case "demo":
		demo := sheet.OnlyTrack(practice)
		if practice == score.AllTracks {
			demo = sheet.Clone()
		} else if err := demo.MergeWith(sheet); err != nil {
			return err
		}
		p := sequencer.NewPlayer(t, output, strip)
		p.Palette, p.Hands = palette, hands
		sess = session{p, func(ctx context.Context) (bool, error) { return p.PlayContext(ctx, demo) }}

	case "learn":
		inPort, err := midi.FindIn(cfg.Input)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		kb := midi.NewKeyboard(inPort)
		l := sequencer.NewLearner(t, output, strip, kb, practice)
		l.Palette, l.Hands = palette, hands
		sess = session{l, func(ctx context.Context) (bool, error) { return l.LearnContext(ctx, sheet) }}
		logger.Info("listening", "input", kb.Name())

	default:
		return fmt.Errorf("unknown mode %q (want play, learn or demo)", cfg.Mode)
	}
	logger.Info("playing", "output", output.Name(), "mode", cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var program *tea.Program
	if opts.useTUI {
		pal, err := theme.LoadOrDefault(cfg.Theme)
		if err != nil {
			return err
		}
		deviceMgr := midi.NewDeviceManager()
		g.Go(func() error {
			deviceMgr.Run(gctx)
			return nil
		})

		m := tui.NewModel(sess, strip, deviceMgr, theme.New(pal))
		m.Palette = palette
		m.Title = filepath.Base(opts.file)
		m.Mode = cfg.Mode
		m.Duration = length
		m.Pause = pause
		program = tea.NewProgram(m, tea.WithAltScreen())

		g.Go(func() error {
			_, err := program.Run()
			cancel()
			return err
		})
	}

	g.Go(func() error {
		completed, err := sess.run(gctx)
		debug.Log("main", "session ended completed=%v err=%v", completed, err)
		if program != nil {
			program.Send(tui.DoneMsg{Completed: completed, Err: err})
		} else {
			cancel()
		}
		return err
	})

	return g.Wait()
}
