package canbus

import (
	"fmt"
	"sync"
)

// Recorder is a Bus that keeps every sent frame in memory. It backs tests
// and development runs without CAN hardware.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
	err    error
	closed bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send stores the frame, or returns the injected error without storing it.
func (r *Recorder) Send(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("recorder is closed")
	}
	if r.err != nil {
		return r.err
	}

	r.frames = append(r.frames, f)
	return nil
}

// Close marks the recorder closed; later sends fail.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// SetError makes every following Send return err. Pass nil to heal the bus.
func (r *Recorder) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Frames returns a copy of everything recorded so far.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the most recent frame, if any.
func (r *Recorder) Last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}
