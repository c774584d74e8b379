//go:build linux

package interlock

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// Pin is an Input backed by a BCM GPIO pin wired as an active-low stop
// button: pulled up, shorted to ground when pressed.
type Pin struct {
	pin rpio.Pin
}

// OpenPin maps the GPIO range and configures the pin as a pulled-up input.
func OpenPin(bcm int) (*Pin, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open gpio: %w", err)
	}

	p := rpio.Pin(bcm)
	p.Input()
	p.PullUp()

	return &Pin{pin: p}, nil
}

// Asserted reports a pressed button, which reads low.
func (p *Pin) Asserted() bool {
	return p.pin.Read() == rpio.Low
}

// Close releases the GPIO mapping.
func (p *Pin) Close() error {
	return rpio.Close()
}
