package canbus

import "log"

// Tracer logs every frame passing through it. With a nil inner bus it only
// logs, which is exactly what a dry run wants.
type Tracer struct {
	Bus Bus
}

// Send logs the frame and forwards it to the inner bus, if there is one.
func (t *Tracer) Send(f Frame) error {
	log.Printf("can tx id=0x%03X dlc=%d data=% X", f.ID, f.Len, f.Data[:f.Len])

	if t.Bus == nil {
		return nil
	}
	return t.Bus.Send(f)
}

// Close closes the inner bus, if there is one.
func (t *Tracer) Close() error {
	if t.Bus == nil {
		return nil
	}
	return t.Bus.Close()
}
