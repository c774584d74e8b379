package smc

import (
	"fmt"
	"sync"

	"go.bug.st/serial"
)

// DefaultBaudRate is the rate every controller in this repository listens at.
const DefaultBaudRate = 115200

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to a controller over a serial port.
type Serial struct {
	port string
	baud int

	conn      serial.Port
	mu        sync.RWMutex
	connected bool
}

// New creates a new Serial commander for the specified port and baud rate.
func New(port string, baud int) *Serial {
	if baud == 0 {
		baud = DefaultBaudRate
	}

	return &Serial{
		port: port,
		baud: baud,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baud,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	return nil
}

// Close closes the serial port.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.connected = false

	if d.conn != nil {
		err := d.conn.Close()
		d.conn = nil
		if err != nil {
			return fmt.Errorf("failed to close serial port: %w", err)
		}
	}

	return nil
}

// IsConnected returns whether the port is currently open.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// Enable sends the enable command.
func (d *Serial) Enable() error {
	return d.Raw(cmdEnable)
}

// Disable sends the disable command.
func (d *Serial) Disable() error {
	return d.Raw(cmdDisable)
}

// SetAll sends a uniform duty command for all four channels.
func (d *Serial) SetAll(v int16) error {
	cmd, err := EncodeAll(v)
	if err != nil {
		return err
	}
	return d.Raw(cmd)
}

// SetChannels sends a per-channel batch for the given index/value pairs.
func (d *Serial) SetChannels(values map[int]int16) error {
	cmd, err := EncodeChannels(values)
	if err != nil {
		return err
	}
	return d.Raw(cmd)
}

// SetBusID sends an arbitration id change.
func (d *Serial) SetBusID(id int) error {
	cmd, err := EncodeBusID(id)
	if err != nil {
		return err
	}
	return d.Raw(cmd)
}

// Raw writes one command exactly as given. One write is one command chunk on
// the device side; the device never replies, so a nil error only means the
// bytes left this machine.
func (d *Serial) Raw(cmd string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	return nil
}
