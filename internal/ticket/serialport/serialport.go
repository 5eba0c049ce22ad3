package serialport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedPlatform means serial port enumeration is not
	// available on this system.
	ErrUnsupportedPlatform = errors.New("serial ports are not supported on this platform")
	// ErrNoPorts means enumeration worked but found nothing to print to.
	ErrNoPorts = errors.New("no serial ports detected")
)

// PortError wraps an open or write failure on the device.
type PortError struct {
	Op  string
	Err error
}

func (e *PortError) Error() string {
	return fmt.Sprintf("serial port %s: %v", e.Op, e.Err)
}

func (e *PortError) Unwrap() error { return e.Err }

// Thermal printers on this transport uniformly expect 9600 8N1, so the
// framing is fixed rather than configurable.
var printerMode = &serial.Mode{
	BaudRate: 9600,
	DataBits: 8,
	Parity:   serial.NoParity,
	StopBits: serial.OneStopBit,
}

const defaultSettleDelay = time.Second

type Config struct {
	PortName    string
	SettleDelay time.Duration
}

// Transport owns the process-wide serial connection to the receipt printer.
// The selected port name persists across prints; the open handle does not:
// every Write opens, transmits, settles, and closes, so the device is never
// left busy for the next print.
type Transport struct {
	logger      logger.ZapLogger
	settleDelay time.Duration

	// Indirection over go.bug.st/serial so tests can stand in a fake
	// device without hardware.
	open func(name string, mode *serial.Mode) (io.WriteCloser, error)
	list func() ([]string, error)

	mu       sync.Mutex
	portName string
	port     io.WriteCloser // non-nil only while a write is in progress
}

func New(cfg *Config, log logger.ZapLogger) *Transport {
	settle := defaultSettleDelay
	if cfg != nil && cfg.SettleDelay > 0 {
		settle = cfg.SettleDelay
	}
	t := &Transport{
		logger:      log,
		settleDelay: settle,
		open: func(name string, mode *serial.Mode) (io.WriteCloser, error) {
			return serial.Open(name, mode)
		},
		list: serial.GetPortsList,
	}
	if cfg != nil {
		t.portName = cfg.PortName
	}
	return t
}

// RequestPort selects the port to print to. An empty name picks the first
// detected port.
func (t *Transport) RequestPort(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requestPortLocked(name)
}

func (t *Transport) requestPortLocked(name string) error {
	if name != "" {
		t.portName = name
		return nil
	}
	ports, err := t.list()
	if err != nil {
		return ErrUnsupportedPlatform
	}
	if len(ports) == 0 {
		return ErrNoPorts
	}
	t.portName = ports[0]
	t.logger.Info("serial port selected", zap.String("port", t.portName))
	return nil
}

func (t *Transport) PortName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.portName
}

// Ports lists the serial ports visible on this system.
func (t *Transport) Ports() ([]string, error) {
	ports, err := t.list()
	if err != nil {
		return nil, ErrUnsupportedPlatform
	}
	return ports, nil
}

// Write transmits one complete command stream to the printer. The handle is
// released on every exit path, including write failures; only the success
// path waits the settle delay so the printer can flush its buffer before
// the port closes under it.
func (t *Transport) Write(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.portName == "" {
		if err := t.requestPortLocked(""); err != nil {
			return err
		}
	}

	port, err := t.open(t.portName, printerMode)
	if err != nil {
		return &PortError{Op: "open", Err: err}
	}
	t.port = port
	defer func() {
		port.Close()
		t.port = nil
	}()

	if _, err := port.Write(data); err != nil {
		return &PortError{Op: "write", Err: err}
	}
	t.logger.Info("ticket bytes sent", zap.String("port", t.portName), zap.Int("bytes", len(data)))

	time.Sleep(t.settleDelay)
	return nil
}
