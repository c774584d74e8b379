package controller

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.bug.st/serial"

	"github.com/itohio/gosmc/pkg/command"
)

const (
	// DefaultBaudRate is the rate the senders in this repository use.
	DefaultBaudRate = 115200
	// DefaultPending is how many unconsumed command chunks may queue up
	// before the reader starts dropping.
	DefaultPending = 16
)

// SerialSource reads the command port in its own goroutine and hands whole
// reads to the control loop through a bounded channel. The loop stays the
// single consumer; when it falls behind, chunks are dropped, not queued
// without bound.
type SerialSource struct {
	port string
	baud int
	size int

	conn   serial.Port
	chunks chan []byte
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	open   bool
}

// NewSerialSource prepares a source for the named port. size is the read
// buffer capacity and normally comes from the dialect; zero picks the
// extended one.
func NewSerialSource(port string, baud, size int) *SerialSource {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	if size == 0 {
		size = command.Extended.Buffer
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &SerialSource{
		port:   port,
		baud:   baud,
		size:   size,
		chunks: make(chan []byte, DefaultPending),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Open opens the port and starts the reader goroutine.
func (s *SerialSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return fmt.Errorf("already open")
	}

	conn, err := serial.Open(s.port, &serial.Mode{BaudRate: s.baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	s.conn = conn
	s.open = true

	go s.read(conn)

	return nil
}

// Commands returns the channel the control loop drains.
func (s *SerialSource) Commands() <-chan []byte {
	return s.chunks
}

// Close stops the reader and closes the port.
func (s *SerialSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	s.cancel()

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		s.conn = nil
	}

	s.open = false
	close(s.chunks)

	return nil
}

// read pulls raw reads off the port until the source closes. One read is one
// command chunk.
func (s *SerialSource) read(conn serial.Port) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in serial reader: %v", r)
		}
	}()

	buf := make([]byte, s.size)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		n, err := conn.Read(buf)
		if err != nil {
			select {
			case <-s.ctx.Done():
			default:
				log.Printf("Error reading from serial port: %v", err)
			}
			return
		}
		if n == 0 {
			continue
		}

		chunk := make([]byte, n)
		copy(chunk, buf[:n])

		select {
		case s.chunks <- chunk:
		case <-s.ctx.Done():
			return
		default:
			log.Printf("Command queue full, dropping %d bytes", n)
		}
	}
}
