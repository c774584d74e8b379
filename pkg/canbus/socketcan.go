//go:build linux

package canbus

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"golang.org/x/sys/unix"
)

// frameSize is the wire size of a classic can_frame.
const frameSize = 16

// SocketCAN sends frames through a raw CAN socket bound to one network
// interface.
type SocketCAN struct {
	mu   sync.Mutex
	name string
	fd   int
	open bool
}

// Open binds a raw CAN socket to the named interface (e.g. "can0").
func Open(name string) (*SocketCAN, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve CAN interface %s: %w", name, err)
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("failed to open CAN socket: %w", err)
	}

	if err := unix.Bind(fd, &unix.SockaddrCAN{Ifindex: iface.Index}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to bind CAN socket to %s: %w", name, err)
	}

	return &SocketCAN{name: name, fd: fd, open: true}, nil
}

// Send writes one frame to the socket.
func (b *SocketCAN) Send(f Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return fmt.Errorf("bus %s is closed", b.name)
	}
	if f.Len > 8 {
		return fmt.Errorf("payload length %d exceeds a classic frame", f.Len)
	}

	// Classic can_frame layout: id (host order), dlc, 3 padding bytes, data.
	var buf [frameSize]byte
	binary.NativeEndian.PutUint32(buf[0:4], f.ID)
	buf[4] = f.Len
	copy(buf[8:], f.Data[:])

	if _, err := unix.Write(b.fd, buf[:]); err != nil {
		return fmt.Errorf("failed to write frame to %s: %w", b.name, err)
	}

	return nil
}

// Close releases the socket. Closing twice is fine.
func (b *SocketCAN) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}
	b.open = false

	if err := unix.Close(b.fd); err != nil {
		return fmt.Errorf("failed to close CAN socket: %w", err)
	}
	return nil
}
