// Package sony decodes Sony DualShock 4 and DualSense USB input reports.
package sony

import "github.com/padhost/padhost/pad"

// Decode routes a Sony report by product ID. It accepts only reports that
// carry the input report ID and at least MinReportLen bytes.
func Decode(pid uint16, data []byte) (pad.Report, bool) {
	if len(data) < MinReportLen || data[0] != ReportIDInput {
		return pad.Report{}, false
	}

	switch pid {
	case PIDDualSense, PIDDualSenseEdge:
		return decodeDualSense(data), true
	default:
		// DualShock 4 layout is the default for unknown Sony PIDs (covers clones).
		return DecodeDualShock4(data), true
	}
}

// DecodeDualShock4 decodes the DS4 USB input report. Its layout after the
// report ID matches the normalized wire form byte for byte.
func DecodeDualShock4(data []byte) pad.Report {
	var r pad.Report
	_ = r.UnmarshalBinary(data[1:])
	return r
}

// decodeDualSense decodes the DualSense USB input report: four axis bytes,
// then analog triggers and a sequence byte the normalized report does not
// carry, then the three button bitmask bytes.
func decodeDualSense(data []byte) pad.Report {
	var r pad.Report
	r.X = data[dsOffAxes]
	r.Y = data[dsOffAxes+1]
	r.Z = data[dsOffAxes+2]
	r.RZ = data[dsOffAxes+3]
	r.SetDPadButtonsByte(data[dsOffDPadButtons])
	r.SetTriggerButtonsByte(data[dsOffTriggerButtons])
	if len(data) > dsOffExtraButtons {
		r.SetExtraButtonsByte(data[dsOffExtraButtons])
	}
	return r
}
