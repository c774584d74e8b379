package smc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	d := New("/dev/ttyACM0", 9600)
	assert.NotNil(t, d)
	assert.Equal(t, "/dev/ttyACM0", d.port)
	assert.Equal(t, 9600, d.baud)
	assert.False(t, d.IsConnected())
}

func TestNew_DefaultBaud(t *testing.T) {
	d := New("/dev/ttyACM0", 0)
	assert.Equal(t, DefaultBaudRate, d.baud)
}

func TestSerial_NotConnected(t *testing.T) {
	d := New("/dev/ttyACM0", 0)

	err := d.Enable()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")

	err = d.Raw("500\n")
	assert.Error(t, err)
}

func TestSerial_ValidationBeforeConnection(t *testing.T) {
	d := New("/dev/ttyACM0", 0)

	// Argument errors surface even without a port, connection state is
	// checked only once a command is actually sendable.
	assert.ErrorContains(t, d.SetAll(30000), "out of range")
	assert.ErrorContains(t, d.SetBusID(0), "out of range")
	assert.ErrorContains(t, d.SetChannels(nil), "no channels")
}

func TestSerial_CloseIdempotent(t *testing.T) {
	d := New("/dev/ttyACM0", 0)
	assert.NoError(t, d.Close())
	assert.NoError(t, d.Close())
}
