package led

import (
	"fmt"
	"io"

	"go.bug.st/serial"

	"go-pianolearn/debug"
)

// DefaultBaud suits an Adalight sketch driving 176 LEDs at 30 FPS.
const DefaultBaud = 115200

// SerialTransport drives a microcontroller running an Adalight sketch over a
// serial port.
type SerialTransport struct {
	port io.WriteCloser
	buf  []byte
}

// OpenSerial opens the named serial device at the given baud rate.
func OpenSerial(name string, baud int) (*SerialTransport, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	debug.Logger().Info("serial port opened", "port", name, "baud", baud)
	return &SerialTransport{port: p}, nil
}

// SerialPorts lists the serial devices present on the system.
func SerialPorts() ([]string, error) {
	return serial.GetPortsList()
}

// EncodeAdalight appends the wire form of frame to dst:
//
//	'A' 'd' 'a' [count-1 hi] [count-1 lo] [hi^lo^0x55] r g b ...
func EncodeAdalight(dst []byte, frame []RGB) []byte {
	n := len(frame) - 1
	if n < 0 {
		n = 0
	}
	hi, lo := byte(n>>8), byte(n)
	dst = append(dst, 'A', 'd', 'a', hi, lo, hi^lo^0x55)
	for _, c := range frame {
		dst = append(dst, c[0], c[1], c[2])
	}
	return dst
}

func (s *SerialTransport) WriteFrame(frame []RGB) error {
	s.buf = EncodeAdalight(s.buf[:0], frame)
	n, err := s.port.Write(s.buf)
	if err != nil {
		return err
	}
	if n != len(s.buf) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(s.buf))
	}
	return nil
}

func (s *SerialTransport) Close() error {
	debug.Logger().Info("closing serial port")
	return s.port.Close()
}
