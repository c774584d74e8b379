// Package controller runs the tick loop that turns serial commands into a
// periodic CAN state frame: poll one command, poll the stop input, transmit.
package controller

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/itohio/gosmc/pkg/canbus"
	"github.com/itohio/gosmc/pkg/command"
	"github.com/itohio/gosmc/pkg/drive"
	"github.com/itohio/gosmc/pkg/interlock"
)

// DefaultInterval is the tick period of the control loop.
const DefaultInterval = 10 * time.Millisecond

// Config wires a Controller together.
type Config struct {
	Dialect  command.Dialect // zero value means the extended dialect
	Interval time.Duration   // zero means DefaultInterval
	Commands <-chan []byte   // raw serial reads, one chunk per command
	Bus      canbus.Bus
	Stop     interlock.Input // optional
	BusID    int             // initial arbitration id, zero means the default
}

// Controller owns the channel state. Everything it mutates is mutated from
// the loop goroutine; other goroutines only take snapshots.
type Controller struct {
	dialect  command.Dialect
	interval time.Duration
	commands <-chan []byte
	bus      canbus.Bus
	stop     interlock.Input
	state    *drive.State
	sent     atomic.Uint64
}

// New validates cfg and builds a controller; call Run to start it.
func New(cfg Config) (*Controller, error) {
	if cfg.Bus == nil {
		return nil, fmt.Errorf("bus is required")
	}
	if cfg.Commands == nil {
		return nil, fmt.Errorf("command source is required")
	}
	if cfg.Dialect.Name == "" {
		cfg.Dialect = command.Extended
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.BusID != 0 && (cfg.BusID < drive.MinBusID || cfg.BusID > drive.MaxBusID) {
		return nil, fmt.Errorf("bus id %d out of range [%d, %d]", cfg.BusID, drive.MinBusID, drive.MaxBusID)
	}

	c := &Controller{
		dialect:  cfg.Dialect,
		interval: cfg.Interval,
		commands: cfg.Commands,
		bus:      cfg.Bus,
		stop:     cfg.Stop,
		state:    drive.New(),
	}
	if cfg.BusID != 0 {
		c.state.SetBusID(cfg.BusID)
	}

	return c, nil
}

// Run re-enters the tick every interval until ctx is canceled and returns
// the context's error.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Printf("Controller running: dialect=%s interval=%s", c.dialect.Name, c.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Controller stopped after %d frames", c.sent.Load())
			return ctx.Err()
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick is one pass of the loop. Serial is polled before the stop input so
// the interlock wins over an enable arriving in the same tick, and exactly
// one frame goes out at the end, error ignored: the broadcast has no retry
// and no listener to report to.
func (c *Controller) tick() {
	select {
	case chunk, ok := <-c.commands:
		if !ok {
			// Source is gone; keep ticking, frames must not stop.
			c.commands = nil
			break
		}
		c.state.Apply(c.dialect.Parse(chunk))
	default:
	}

	if c.stop != nil && c.stop.Asserted() {
		c.state.Disable()
	}

	_ = c.bus.Send(frameFor(c.state.Snapshot()))
	c.sent.Add(1)
}

// State returns a snapshot of the live channel state.
func (c *Controller) State() drive.Snapshot {
	return c.state.Snapshot()
}

// Sent returns the number of transmit attempts so far.
func (c *Controller) Sent() uint64 {
	return c.sent.Load()
}

// frameFor serializes a snapshot: four little-endian int16 duties under the
// snapshot's arbitration id. While the output is disabled the wire carries
// zeros; the stored values are never touched.
func frameFor(snap drive.Snapshot) canbus.Frame {
	f := canbus.Frame{ID: uint32(snap.BusID), Len: 8}
	if !snap.Running {
		return f
	}

	for i, v := range snap.Channels {
		binary.LittleEndian.PutUint16(f.Data[2*i:], uint16(v))
	}
	return f
}
