package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianolearn/led"
	"go-pianolearn/midi"
	"go-pianolearn/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(arg(args, 0))
	case "leds":
		testLEDs(arg(args, 0), arg(args, 1))
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func usage() {
	fmt.Println("Piano Hardware Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                  - List MIDI and serial ports")
	fmt.Println("  monitor [in]          - Print notes played on an input")
	fmt.Println("  leds <serial> [baud]  - Walk a light along the keys")
	fmt.Println("  poll                  - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, err := midi.InPorts()
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}

	outs, err := midi.OutPorts()
	if err != nil {
		fmt.Printf("\n%v\n", err)
		return
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}

	fmt.Println("\n=== Serial Ports ===")
	ports, err := led.SerialPorts()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, p := range ports {
		fmt.Printf("  %s\n", p)
	}
}

func monitor(selector string) {
	port, err := midi.FindIn(selector)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	kb := midi.NewKeyboard(port)
	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", kb.Name())

	stop, err := kb.Listen(func(raw []byte) {
		msg := gomidi.Message(raw)
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			fmt.Printf("[%s] on  %-4s key %3d vel %3d led %3d\n", time.Now().Format("15:04:05.000"), widgets.NoteName(key), key, vel, ledIndex(key))
		case msg.GetNoteEnd(&ch, &key):
			fmt.Printf("[%s] off %-4s key %3d\n", time.Now().Format("15:04:05.000"), widgets.NoteName(key), key)
		default:
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), msg)
		}
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	<-ctx.Done()
}

func ledIndex(key uint8) int {
	if !led.InRange(key) {
		return -1
	}
	return led.Index(key)
}

func testLEDs(device, baudArg string) {
	if device == "" {
		fmt.Println("Usage: miditest leds <serial> [baud]")
		return
	}
	baud := led.DefaultBaud
	if baudArg != "" {
		b, err := strconv.Atoi(baudArg)
		if err != nil {
			fmt.Printf("Bad baud rate: %v\n", err)
			return
		}
		baud = b
	}

	transport, err := led.OpenSerial(device, baud)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	strip := led.NewStrip(transport, led.Count)
	defer strip.Close()

	palette := led.DefaultPalette()
	curve := led.DefaultVelocityCurve
	fmt.Println("Walking all 88 keys (rainbow by key)...")

	for key := uint8(led.LowestKey); key <= led.HighestKey; key++ {
		vel := uint8(int(key-led.LowestKey) * 127 / (led.HighestKey - led.LowestKey))
		strip.SetKey(key, curve.Color(vel))
		if key > led.LowestKey {
			strip.SetKey(key-1, led.Off)
		}
		if err := strip.Flush(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		time.Sleep(30 * time.Millisecond)
	}

	fmt.Println("Showing role colours on middle C...")
	strip.Clear()
	for _, role := range []led.Role{led.RoleRight, led.RoleLeft, led.RoleWrong, led.RoleRepress} {
		strip.SetKey(60, palette.Color(role, 127))
		if err := strip.Flush(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  %s\n", role)
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	strip.Clear()
	if err := strip.Flush(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done!")
}

func pollDevices() {
	fmt.Println("Polling for device changes...")
	fmt.Println("Connect/disconnect a keyboard to test. Ctrl+C to exit.")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dm := midi.NewDeviceManager()
	go dm.Run(ctx)

	for ev := range dm.Events() {
		fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), ev.Name, ev.Type)
	}
}
