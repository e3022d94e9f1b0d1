// Package pad defines the normalized gamepad report shared by every
// supported controller family.
package pad

import (
	"fmt"
	"io"
	"strings"
)

// DPad is the hat direction as one of eight compass points or Released.
type DPad uint8

const (
	DPadN DPad = iota
	DPadNE
	DPadE
	DPadSE
	DPadS
	DPadSW
	DPadW
	DPadNW
	DPadReleased
)

var dpadNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "none"}

func (d DPad) String() string {
	if int(d) < len(dpadNames) {
		return dpadNames[d]
	}
	return "none"
}

// WireSize is the packed report size in bytes.
const WireSize = 8

// Wire bit assignments.
const (
	dpadMask = 0x0F

	bitSquare   = 0x10
	bitCross    = 0x20
	bitCircle   = 0x40
	bitTriangle = 0x80

	bitL1     = 0x01
	bitR1     = 0x02
	bitL2     = 0x04
	bitR2     = 0x08
	bitSelect = 0x10
	bitStart  = 0x20
	bitL3     = 0x40
	bitR3     = 0x80

	bitSystem = 0x01
	bitExtra  = 0x02
)

// Report is the normalized state of a game controller. Axes are 0-255 with
// ~128 at center. A zero Report is a valid "nothing pressed, sticks
// centered at 0" state with DPadN; decoders always assign every axis and
// the dpad before a report is delivered.
type Report struct {
	X, Y, Z, RZ uint8

	DPad DPad

	Square, Cross, Circle, Triangle bool

	L1, R1, L2, R2 bool
	Select, Start  bool
	L3, R3         bool

	System, Extra bool
}

// MarshalBinary encodes the report into its packed 8-byte wire form:
// four axis bytes, dpad+face-button byte, shoulder/meta-button byte,
// system/extra byte, one reserved byte.
func (r *Report) MarshalBinary() ([]byte, error) {
	b := make([]byte, WireSize)
	b[0] = r.X
	b[1] = r.Y
	b[2] = r.Z
	b[3] = r.RZ
	b[4] = r.dpadButtonsByte()
	b[5] = r.triggerButtonsByte()
	b[6] = r.extraButtonsByte()
	return b, nil
}

// UnmarshalBinary decodes the packed 8-byte wire form.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < WireSize {
		return io.ErrUnexpectedEOF
	}
	r.X = data[0]
	r.Y = data[1]
	r.Z = data[2]
	r.RZ = data[3]
	r.SetDPadButtonsByte(data[4])
	r.SetTriggerButtonsByte(data[5])
	r.SetExtraButtonsByte(data[6])
	return nil
}

func (r *Report) dpadButtonsByte() uint8 {
	b := uint8(r.DPad) & dpadMask
	if r.Square {
		b |= bitSquare
	}
	if r.Cross {
		b |= bitCross
	}
	if r.Circle {
		b |= bitCircle
	}
	if r.Triangle {
		b |= bitTriangle
	}
	return b
}

func (r *Report) triggerButtonsByte() uint8 {
	var b uint8
	if r.L1 {
		b |= bitL1
	}
	if r.R1 {
		b |= bitR1
	}
	if r.L2 {
		b |= bitL2
	}
	if r.R2 {
		b |= bitR2
	}
	if r.Select {
		b |= bitSelect
	}
	if r.Start {
		b |= bitStart
	}
	if r.L3 {
		b |= bitL3
	}
	if r.R3 {
		b |= bitR3
	}
	return b
}

func (r *Report) extraButtonsByte() uint8 {
	var b uint8
	if r.System {
		b |= bitSystem
	}
	if r.Extra {
		b |= bitExtra
	}
	return b
}

// SetDPadButtonsByte assigns the dpad nibble and face buttons from a raw
// wire byte. Controllers whose reports already carry this exact packing
// (DualShock 4 and compatibles) feed their byte straight through here.
func (r *Report) SetDPadButtonsByte(b uint8) {
	r.DPad = DPad(b & dpadMask)
	if r.DPad > DPadReleased {
		r.DPad = DPadReleased
	}
	r.Square = b&bitSquare != 0
	r.Cross = b&bitCross != 0
	r.Circle = b&bitCircle != 0
	r.Triangle = b&bitTriangle != 0
}

// SetTriggerButtonsByte assigns shoulder, trigger, meta and stick-click
// buttons from a raw wire byte.
func (r *Report) SetTriggerButtonsByte(b uint8) {
	r.L1 = b&bitL1 != 0
	r.R1 = b&bitR1 != 0
	r.L2 = b&bitL2 != 0
	r.R2 = b&bitR2 != 0
	r.Select = b&bitSelect != 0
	r.Start = b&bitStart != 0
	r.L3 = b&bitL3 != 0
	r.R3 = b&bitR3 != 0
}

// SetExtraButtonsByte assigns the system and extra buttons from a raw wire
// byte. The upper 6 bits are reserved and ignored.
func (r *Report) SetExtraButtonsByte(b uint8) {
	r.System = b&bitSystem != 0
	r.Extra = b&bitExtra != 0
}

var buttonNames = []struct {
	name string
	get  func(*Report) bool
}{
	{"Square", func(r *Report) bool { return r.Square }},
	{"Cross", func(r *Report) bool { return r.Cross }},
	{"Circle", func(r *Report) bool { return r.Circle }},
	{"Triangle", func(r *Report) bool { return r.Triangle }},
	{"L1", func(r *Report) bool { return r.L1 }},
	{"R1", func(r *Report) bool { return r.R1 }},
	{"L2", func(r *Report) bool { return r.L2 }},
	{"R2", func(r *Report) bool { return r.R2 }},
	{"Select", func(r *Report) bool { return r.Select }},
	{"Start", func(r *Report) bool { return r.Start }},
	{"L3", func(r *Report) bool { return r.L3 }},
	{"R3", func(r *Report) bool { return r.R3 }},
	{"System", func(r *Report) bool { return r.System }},
	{"Extra", func(r *Report) bool { return r.Extra }},
}

// String renders the report for debug output: axes, dpad direction and the
// names of all pressed buttons.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(x, y, z, rz) = (%d, %d, %d, %d) DPad = %s", r.X, r.Y, r.Z, r.RZ, r.DPad)
	for _, b := range buttonNames {
		if b.get(r) {
			sb.WriteByte(' ')
			sb.WriteString(b.name)
		}
	}
	return sb.String()
}
