// Package canbus is the write side of a classic CAN connection. The
// controller broadcasts state frames and never listens, so the surface is a
// one-way Bus with a SocketCAN implementation for Linux, an in-memory
// recorder for tests and a tracing decorator for dry runs.
package canbus

// Frame is one classic CAN frame: an 11-bit arbitration id and up to eight
// payload bytes.
type Frame struct {
	ID   uint32
	Len  uint8
	Data [8]byte
}

// Bus is anything that can put frames on a CAN network.
type Bus interface {
	Send(Frame) error
	Close() error
}

// Ensure the implementations stay on the interface.
var (
	_ Bus = (*SocketCAN)(nil)
	_ Bus = (*Recorder)(nil)
	_ Bus = (*Tracer)(nil)
)
