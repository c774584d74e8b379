// Package interlock reads the physical stop input that forces the controller
// out of the running state.
package interlock

// Input reports whether the stop line is asserted. The line is level
// triggered: it is sampled once per control tick, and every tick it reads
// asserted the running flag is forced off again, regardless of commands.
type Input interface {
	Asserted() bool
}

// Func adapts a plain function to an Input.
type Func func() bool

// Asserted calls the wrapped function.
func (f Func) Asserted() bool {
	return f()
}

var (
	_ Input = (Func)(nil)
	_ Input = (*Pin)(nil)
)
