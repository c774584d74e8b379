package smc

import (
	"fmt"
	"sync"

	"github.com/itohio/gosmc/pkg/command"
	"github.com/itohio/gosmc/pkg/drive"
)

// Mock simulates a controller for testing and development: every command is
// fed through the real wire parser into a real channel state, so whatever the
// mock reports is what a device on the other end of the cable would hold.
type Mock struct {
	mu        sync.RWMutex
	dialect   command.Dialect
	state     *drive.State
	sent      []string
	connected bool
}

// Ensure Mock implements Commander.
var _ Commander = (*Mock)(nil)

// NewMock creates a new mocked controller speaking the extended dialect.
func NewMock() *Mock {
	return &Mock{
		dialect: command.Extended,
		state:   drive.New(),
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	return nil
}

// Close simulates disconnecting. The mocked device keeps its state, just as
// a powered controller would when the cable is pulled.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	return nil
}

// IsConnected returns whether the mock is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Enable sends the enable command.
func (m *Mock) Enable() error {
	return m.Raw(cmdEnable)
}

// Disable sends the disable command.
func (m *Mock) Disable() error {
	return m.Raw(cmdDisable)
}

// SetAll sends a uniform duty command for all four channels.
func (m *Mock) SetAll(v int16) error {
	cmd, err := EncodeAll(v)
	if err != nil {
		return err
	}
	return m.Raw(cmd)
}

// SetChannels sends a per-channel batch for the given index/value pairs.
func (m *Mock) SetChannels(values map[int]int16) error {
	cmd, err := EncodeChannels(values)
	if err != nil {
		return err
	}
	return m.Raw(cmd)
}

// SetBusID sends an arbitration id change.
func (m *Mock) SetBusID(id int) error {
	cmd, err := EncodeBusID(id)
	if err != nil {
		return err
	}
	return m.Raw(cmd)
}

// Raw feeds one command through the wire parser into the simulated state.
// Input the parser drops is dropped here too, without an error: that is the
// device contract being mocked.
func (m *Mock) Raw(cmd string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}

	m.sent = append(m.sent, cmd)
	m.state.Apply(m.dialect.Parse([]byte(cmd)))

	return nil
}

// State returns a snapshot of the simulated channel state.
func (m *Mock) State() drive.Snapshot {
	return m.state.Snapshot()
}

// Sent returns a copy of every command string received so far.
func (m *Mock) Sent() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.sent))
	copy(out, m.sent)
	return out
}
