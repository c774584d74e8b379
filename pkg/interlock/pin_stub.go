//go:build !linux

package interlock

import (
	"fmt"
	"runtime"
)

// Pin is only available on Linux; this stub keeps host tools portable.
type Pin struct{}

// OpenPin always fails off Linux.
func OpenPin(bcm int) (*Pin, error) {
	return nil, fmt.Errorf("gpio is not available on %s", runtime.GOOS)
}

// Asserted always reports a released line.
func (p *Pin) Asserted() bool {
	return false
}

// Close is a no-op.
func (p *Pin) Close() error {
	return nil
}
