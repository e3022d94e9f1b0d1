// Package xbox360 decodes the wired Xbox 360 controller's 20-byte XInput
// report.
package xbox360

import (
	"encoding/binary"

	"github.com/padhost/padhost/pad"
)

// dpadTable maps the low nibble of byte 2 to a compass direction. The pad
// reports each cardinal as one bit (up 0x01, down 0x02, left 0x04, right
// 0x08); diagonals combine two bits. Any combination not listed reads as
// released.
var dpadTable = [16]pad.DPad{
	0x00: pad.DPadReleased,
	0x01: pad.DPadN,
	0x09: pad.DPadNE,
	0x08: pad.DPadE,
	0x0A: pad.DPadSE,
	0x02: pad.DPadS,
	0x06: pad.DPadSW,
	0x04: pad.DPadW,
	0x05: pad.DPadNW,
	0x03: pad.DPadReleased,
	0x07: pad.DPadReleased,
	0x0B: pad.DPadReleased,
	0x0C: pad.DPadReleased,
	0x0D: pad.DPadReleased,
	0x0E: pad.DPadReleased,
	0x0F: pad.DPadReleased,
}

// Decode parses a 20-byte Xbox 360 report. The caller guarantees len(data)
// >= ReportLen.
func Decode(data []byte) pad.Report {
	var r pad.Report

	b := data[offDPadButtons]
	r.DPad = dpadTable[b&0x0F]
	r.Start = b&btnStart != 0
	r.Select = b&btnSelect != 0
	r.L3 = b&btnLThumb != 0
	r.R3 = b&btnRThumb != 0

	b = data[offButtons]
	r.L1 = b&btnLShoulder != 0
	r.R1 = b&btnRShoulder != 0
	r.System = b&btnGuide != 0
	r.Cross = b&btnA != 0
	r.Circle = b&btnB != 0
	r.Square = b&btnX != 0
	r.Triangle = b&btnY != 0

	r.L2 = data[offLTrigger] > TriggerThreshold
	r.R2 = data[offRTrigger] > TriggerThreshold

	x := int16(binary.LittleEndian.Uint16(data[offAxes:]))
	y := int16(binary.LittleEndian.Uint16(data[offAxes+2:]))
	z := int16(binary.LittleEndian.Uint16(data[offAxes+4:]))
	rz := int16(binary.LittleEndian.Uint16(data[offAxes+6:]))

	r.X = axisToUint8(x)
	r.Y = axisToUint8Inv(y)
	r.Z = axisToUint8(z)
	r.RZ = axisToUint8Inv(rz)

	return r
}

// axisToUint8 converts a signed 16-bit stick value to the unsigned 8-bit
// range by shifting the origin and keeping the high byte.
func axisToUint8(v int16) uint8 {
	return uint8((int(v) + 0x8000) >> 8)
}

// axisToUint8Inv additionally mirrors the axis; the 360 reports up and
// forward as positive where the normalized report wants 0.
func axisToUint8Inv(v int16) uint8 {
	return 0xFF - uint8((int(v)+0x8000)>>8)
}
