// Package nintendo decodes Nintendo Switch Pro Controller (and Joy-Con)
// USB input reports, both the full 0x30 form and the simple 0x3F form.
package nintendo

import "github.com/padhost/padhost/pad"

// Decode dispatches by report ID. Unknown IDs and short reports are
// unrecognized.
func Decode(data []byte) (pad.Report, bool) {
	if len(data) < MinReportLen {
		return pad.Report{}, false
	}

	switch data[0] {
	case ReportIDFull:
		if len(data) < FullReportLen {
			return pad.Report{}, false
		}
		return decodeFull(data), true
	case ReportIDSimple:
		return decodeSimple(data), true
	default:
		return pad.Report{}, false
	}
}

// decodeFull handles the 0x30 report: data[1] is a timer, data[2] battery
// status, data[3..5] three button bytes, data[6..11] two 12-bit packed
// stick pairs. Direction buttons are discrete and get synthesized into a
// compass value.
func decodeFull(data []byte) pad.Report {
	var r pad.Report

	btnRight := data[3]
	btnMid := data[4]
	btnLeft := data[5]

	// Map by physical face button position.
	r.Cross = btnRight&fullBtnRightB != 0    // B (south)
	r.Circle = btnRight&fullBtnRightA != 0   // A (east)
	r.Square = btnRight&fullBtnRightY != 0   // Y (west)
	r.Triangle = btnRight&fullBtnRightX != 0 // X (north)

	r.R1 = btnRight&fullBtnRightR != 0
	r.R2 = btnRight&fullBtnRightZR != 0
	r.L1 = btnLeft&fullBtnLeftL != 0
	r.L2 = btnLeft&fullBtnLeftZL != 0

	r.Select = btnMid&fullBtnMidMinus != 0
	r.Start = btnMid&fullBtnMidPlus != 0
	r.R3 = btnMid&fullBtnMidRStick != 0
	r.L3 = btnMid&fullBtnMidLStick != 0
	r.System = btnMid&fullBtnMidHome != 0
	r.Extra = btnMid&fullBtnMidCapture != 0

	up := btnLeft&fullBtnLeftUp != 0
	down := btnLeft&fullBtnLeftDown != 0
	left := btnLeft&fullBtnLeftLeft != 0
	right := btnLeft&fullBtnLeftRight != 0

	switch {
	case up && right:
		r.DPad = pad.DPadNE
	case down && right:
		r.DPad = pad.DPadSE
	case down && left:
		r.DPad = pad.DPadSW
	case up && left:
		r.DPad = pad.DPadNW
	case up:
		r.DPad = pad.DPadN
	case right:
		r.DPad = pad.DPadE
	case down:
		r.DPad = pad.DPadS
	case left:
		r.DPad = pad.DPadW
	default:
		r.DPad = pad.DPadReleased
	}

	// Left stick: 12-bit packed in bytes 6-8.
	lx := uint16(data[6]) | uint16(data[7]&0x0F)<<8
	ly := uint16(data[7]>>4) | uint16(data[8])<<4

	// Right stick: 12-bit packed in bytes 9-11.
	rx := uint16(data[9]) | uint16(data[10]&0x0F)<<8
	ry := uint16(data[10]>>4) | uint16(data[11])<<4

	// 12-bit (0-4095, ~2048 center) to 8-bit (0-255, 128 center); vertical
	// axes invert so up reads 0.
	r.X = uint8(lx >> 4)
	r.Y = 0xFF - uint8(ly>>4)
	r.Z = uint8(rx >> 4)
	r.RZ = 0xFF - uint8(ry>>4)

	return r
}

// decodeSimple handles the 0x3F report: two button bytes, a standard hat
// byte and four 8-bit axes.
func decodeSimple(data []byte) pad.Report {
	var r pad.Report

	btn1 := data[1]
	btn2 := data[2]

	r.Square = btn1&simpleBtnY != 0   // Y (west)
	r.Cross = btn1&simpleBtnB != 0    // B (south)
	r.Circle = btn1&simpleBtnA != 0   // A (east)
	r.Triangle = btn1&simpleBtnX != 0 // X (north)
	r.L1 = btn1&simpleBtnL != 0
	r.R1 = btn1&simpleBtnR != 0
	r.L2 = btn1&simpleBtnZL != 0
	r.R2 = btn1&simpleBtnZR != 0

	r.Select = btn2&simpleBtnMinus != 0
	r.Start = btn2&simpleBtnPlus != 0
	r.L3 = btn2&simpleBtnLStick != 0
	r.R3 = btn2&simpleBtnRStick != 0
	r.System = btn2&simpleBtnHome != 0
	r.Extra = btn2&simpleBtnCapture != 0

	if data[3] > uint8(pad.DPadReleased) {
		r.DPad = pad.DPadReleased
	} else {
		r.DPad = pad.DPad(data[3])
	}

	r.X = data[4]
	r.Y = data[5]
	r.Z = data[6]
	r.RZ = data[7]

	return r
}
