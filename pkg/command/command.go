// Package command parses the one-way ASCII protocol spoken over the serial
// link. Parsing is pure: a raw read buffer in, an Action out. Input that does
// not amount to a valid command yields the None action; the wire has no
// response path, so nothing is ever reported back to the sender.
package command

import (
	"bytes"
	"fmt"
)

// Value ranges the protocol accepts. Anything outside is dropped, never
// clamped.
const (
	MinDuty  = -25000
	MaxDuty  = 25000
	MinBusID = 1
	MaxBusID = 4

	// NumChannels is the number of duty channels a controller drives.
	NumChannels = 4
)

// Kind tells what an Action asks the channel state to do.
type Kind int

const (
	// None means the buffer did not contain a valid command.
	None Kind = iota
	// Enable turns the running flag on.
	Enable
	// Disable turns the running flag off.
	Disable
	// SetAll sets every channel to Value.
	SetAll
	// SetChannels sets the channels picked out by Mask to their Values.
	SetChannels
	// SetBusID changes the arbitration id used for transmitted frames.
	SetBusID
)

// Action is the outcome of parsing one command buffer.
type Action struct {
	Kind   Kind
	Value  int16 // SetAll
	BusID  int   // SetBusID
	Values [NumChannels]int16
	Mask   [NumChannels]bool // which Values a SetChannels batch applies
}

// Dialect is one accepted flavor of the wire protocol.
type Dialect struct {
	Name     string
	Buffer   int  // read buffer capacity; one byte is reserved for termination
	TrimEOL  bool // strip trailing '\n'/'\r' before dispatch
	Bus      bool // accept 'c<N>' arbitration id commands
	Channels bool // accept 'p<idx>:<val>,...' batches
}

// Basic is the first-generation protocol: 16-byte buffer, enable/disable and
// uniform duty only, arbitration id fixed at 1. Unknown leading bytes fall
// through to the uniform-duty conversion, so "c3" zeroes all channels here
// rather than touching the arbitration id.
var Basic = Dialect{Name: "basic", Buffer: 16}

// Extended is the second-generation protocol: 64-byte buffer, newline
// trimming, arbitration id and per-channel batch commands.
var Extended = Dialect{Name: "extended", Buffer: 64, TrimEOL: true, Bus: true, Channels: true}

// DialectByName resolves a configuration name to a dialect.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case Basic.Name:
		return Basic, nil
	case Extended.Name:
		return Extended, nil
	}
	return Dialect{}, fmt.Errorf("unknown dialect %q", name)
}

// Parse interprets one raw read from the serial link.
//
// Dispatch is on the first byte: 'i' enables, 'o' disables, 'c' and 'p' are
// dialect gated, anything else is a uniform duty value. Malformed or
// out-of-range input produces the None action; batches drop bad tokens one by
// one and still apply the rest.
func (d Dialect) Parse(buf []byte) Action {
	if d.Buffer > 0 && len(buf) >= d.Buffer {
		buf = buf[:d.Buffer-1]
	}
	if d.TrimEOL {
		buf = bytes.TrimRight(buf, "\r\n")
	}
	if len(buf) == 0 {
		return Action{}
	}

	switch buf[0] {
	case 'i':
		return Action{Kind: Enable}
	case 'o':
		return Action{Kind: Disable}
	case 'c':
		if d.Bus {
			return parseBusID(buf[1:])
		}
	case 'p':
		if d.Channels {
			return parseChannels(buf)
		}
	}
	return parseUniform(buf)
}

func parseBusID(rest []byte) Action {
	id := atoiPrefix(rest)
	if id < MinBusID || id > MaxBusID {
		return Action{}
	}
	return Action{Kind: SetBusID, BusID: id}
}

func parseUniform(buf []byte) Action {
	v := atoiPrefix(buf)
	if v < MinDuty || v > MaxDuty {
		return Action{}
	}
	return Action{Kind: SetAll, Value: int16(v)}
}

// parseChannels handles a 'p<idx>:<val>[,p<idx>:<val>...]' batch. Every
// comma-separated token carries its own 'p' prefix. Tokens are validated one
// by one; a later token wins over an earlier one for the same index.
func parseChannels(buf []byte) Action {
	act := Action{Kind: SetChannels}
	applied := false

	for _, tok := range bytes.Split(buf, []byte{','}) {
		// Shape: 'p', one channel digit, ':', then the value text.
		if len(tok) < 3 || tok[0] != 'p' || tok[2] != ':' {
			continue
		}
		if tok[1] < '0' || tok[1] > '3' {
			continue
		}
		v := atoiPrefix(tok[3:])
		if v < MinDuty || v > MaxDuty {
			continue
		}
		idx := int(tok[1] - '0')
		act.Values[idx] = int16(v)
		act.Mask[idx] = true
		applied = true
	}

	if !applied {
		return Action{}
	}
	return act
}

// atoiPrefix converts a leading decimal prefix the way C atoi does: optional
// whitespace, an optional sign, digits up to the first non-digit. No digits
// means 0, and 0 is in range, so unparseable text is indistinguishable from
// an explicit "0". That quirk is part of the wire contract.
//
// The accumulator freezes beyond six digits; a number that long is already
// outside every accepted range, and freezing keeps the arithmetic safe on
// 32-bit targets.
func atoiPrefix(s []byte) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n <= 99999 {
			n = n*10 + int(s[i]-'0')
		}
	}
	if neg {
		return -n
	}
	return n
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
