// Package smc is the host side of the one-way serial command protocol: a
// typed writer that turns method calls into the wire strings a controller
// understands. The link never answers, so there is nothing to read back;
// methods validate their arguments instead, because a human at the keyboard
// deserves an error where the device would only stay silent.
package smc

// Commander defines the interface for driving a controller (real or mocked).
type Commander interface {
	Connect() error
	Close() error
	IsConnected() bool
	Enable() error
	Disable() error
	SetAll(v int16) error
	SetChannels(values map[int]int16) error
	SetBusID(id int) error
	Raw(cmd string) error
}

// Ensure Serial implements Commander.
var _ Commander = (*Serial)(nil)

// Ensure Mock implements Commander.
var _ Commander = (*Mock)(nil)
