// Package drive holds the output state of one controller: four signed duty
// channels, the running flag and the arbitration id used on the bus.
package drive

import (
	"sync"

	"github.com/itohio/gosmc/pkg/command"
)

// Invariants the state maintains. Writers outside these ranges are ignored,
// never clamped; the parser validates first, but the state does not trust
// its callers with its own invariants.
const (
	MinDuty  = -25000
	MaxDuty  = 25000
	MinBusID = 1
	MaxBusID = 4

	// NumChannels is the number of duty channels.
	NumChannels = 4

	// DefaultBusID is the arbitration id a fresh state transmits under.
	DefaultBusID = 1
)

// Snapshot is a copy of the state at one instant. The transmit path works
// from snapshots only and never touches live state.
type Snapshot struct {
	Channels [NumChannels]int16
	Running  bool
	BusID    int
}

// State is the single source of truth for what goes on the wire. The control
// loop is its only writer; the lock exists so other goroutines can take
// snapshots while the loop runs.
type State struct {
	mu       sync.RWMutex
	channels [NumChannels]int16
	running  bool
	busID    int
}

// New returns a state with all duties at zero, output disabled and the
// arbitration id at its default.
func New() *State {
	return &State{busID: DefaultBusID}
}

// SetAll sets every channel to v. Out-of-range values change nothing.
func (s *State) SetAll(v int16) {
	if v < MinDuty || v > MaxDuty {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.channels {
		s.channels[i] = v
	}
}

// Set sets channel idx to v. An unknown index or an out-of-range value
// changes nothing.
func (s *State) Set(idx int, v int16) {
	if idx < 0 || idx >= NumChannels {
		return
	}
	if v < MinDuty || v > MaxDuty {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[idx] = v
}

// SetBusID changes the arbitration id. Ids outside [MinBusID, MaxBusID]
// change nothing.
func (s *State) SetBusID(id int) {
	if id < MinBusID || id > MaxBusID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busID = id
}

// Enable turns the running flag on. Stored duties are not touched.
func (s *State) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
}

// Disable turns the running flag off. Stored duties are not touched; they
// are only masked on the wire while disabled.
func (s *State) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// Apply routes one parsed action into the state. Every range is re-checked
// by the setter it lands on; the None action changes nothing.
func (s *State) Apply(act command.Action) {
	switch act.Kind {
	case command.Enable:
		s.Enable()
	case command.Disable:
		s.Disable()
	case command.SetAll:
		s.SetAll(act.Value)
	case command.SetChannels:
		for i, set := range act.Mask {
			if set {
				s.Set(i, act.Values[i])
			}
		}
	case command.SetBusID:
		s.SetBusID(act.BusID)
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Channels: s.channels,
		Running:  s.running,
		BusID:    s.busID,
	}
}
