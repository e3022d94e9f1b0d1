// Package generic decodes unbranded HID gamepads that identify only by
// report shape: an 8-byte layout common to cheap USB pads and a minimal
// 3-byte layout.
package generic

import "github.com/padhost/padhost/pad"

// Report lengths the heuristic dispatcher accepts on 8-byte endpoints.
const (
	ReportLen8 = 8
	ReportLen3 = 3
)

// 8-byte layout, byte 5 high nibble: face buttons.
const (
	btnTriangle = 0x01
	btnCircle   = 0x02
	btnCross    = 0x04
	btnSquare   = 0x08
)

// 8-byte layout, byte 6 high nibble: meta and stick clicks.
const (
	btnL3     = 0x01
	btnR3     = 0x02
	btnSelect = 0x04
	btnStart  = 0x08
)

// 8-byte layout, byte 6 low nibble: shoulders and triggers.
const (
	btnL1 = 0x01
	btnR1 = 0x02
	btnL2 = 0x04
	btnR2 = 0x08
)

// Decode8 parses the 8-byte layout: axes in rz, z, x, y order, byte 4
// unused (usually 0xFF), nibble-packed buttons in bytes 5 and 6. The caller
// guarantees len(data) >= ReportLen8.
func Decode8(data []byte) pad.Report {
	var r pad.Report

	r.RZ = data[0]
	r.Z = data[1]
	r.X = data[2]
	r.Y = data[3]

	bits := data[5] >> 4
	r.Triangle = bits&btnTriangle != 0
	r.Circle = bits&btnCircle != 0
	r.Cross = bits&btnCross != 0
	r.Square = bits&btnSquare != 0

	hat := data[5] & 0x0F
	if hat > uint8(pad.DPadReleased) {
		hat = uint8(pad.DPadReleased)
	}
	r.DPad = pad.DPad(hat)

	bits = data[6] >> 4
	r.L3 = bits&btnL3 != 0
	r.R3 = bits&btnR3 != 0
	r.Select = bits&btnSelect != 0
	r.Start = bits&btnStart != 0

	bits = data[6] & 0x0F
	r.L1 = bits&btnL1 != 0
	r.R1 = bits&btnR1 != 0
	r.L2 = bits&btnL2 != 0
	r.R2 = bits&btnR2 != 0

	return r
}

// Decode3 parses the minimal 3-byte layout: x, y and one button nibble.
// The nibble lands in the face-button bits of the packed dpad byte with the
// dpad itself forced to released. The caller guarantees len(data) >=
// ReportLen3.
func Decode3(data []byte) pad.Report {
	var r pad.Report

	r.X = data[0]
	r.Y = data[1]
	r.SetDPadButtonsByte(data[2]<<4 | uint8(pad.DPadReleased))

	return r
}
