//go:build !linux

package canbus

import (
	"fmt"
	"runtime"
)

// SocketCAN is only available on Linux; this stub keeps the package building
// everywhere else so host tools and tests stay portable.
type SocketCAN struct{}

// Open always fails off Linux.
func Open(name string) (*SocketCAN, error) {
	return nil, fmt.Errorf("socketcan is not available on %s", runtime.GOOS)
}

// Send always fails off Linux.
func (b *SocketCAN) Send(Frame) error {
	return fmt.Errorf("socketcan is not available on %s", runtime.GOOS)
}

// Close is a no-op.
func (b *SocketCAN) Close() error {
	return nil
}
