// Package decode classifies raw HID input reports and runs the matching
// controller-family decoder, producing the normalized pad.Report.
//
// Dispatch priority, first stage that claims the device wins:
//  1. Hint-based (Xbox One, Switch Pro, raised during enumeration)
//  2. VID/PID-based (Sony, Nintendo)
//  3. Endpoint-size heuristic (Xbox 360, generic HID, DirectInput catch-all)
package decode

import (
	"github.com/padhost/padhost/decode/generic"
	"github.com/padhost/padhost/decode/nintendo"
	"github.com/padhost/padhost/decode/sony"
	"github.com/padhost/padhost/decode/xbox360"
	"github.com/padhost/padhost/pad"
	"github.com/padhost/padhost/registry"
)

// Context carries the per-device facts a strategy may consult. Strategies
// are pure: they read the context and the report bytes and nothing else.
type Context struct {
	VID, PID      uint16
	HaveIdentity  bool
	Hint          registry.Hint
	MaxPacketSize uint16
}

// Outcome is a strategy's verdict on one report.
type Outcome int

const (
	// Pass means the strategy does not apply to this device; the next
	// strategy in order is tried.
	Pass Outcome = iota
	// Decoded means a report was produced.
	Decoded
	// Drop means the strategy owns this device but the bytes are not a
	// usable report; dispatch stops without a report.
	Drop
)

// Strategy inspects one report under a device context.
type Strategy func(Context, []byte) (pad.Report, Outcome)

// Strategies returns the dispatch chain in priority order.
func Strategies() []Strategy {
	return []Strategy{ByHint, ByIdentity, ByEndpointSize}
}

// Classifier runs the dispatch chain for report completions.
type Classifier struct {
	strategies []Strategy
}

// NewClassifier builds a classifier with the standard strategy order.
func NewClassifier() *Classifier {
	return &Classifier{strategies: Strategies()}
}

// Decode classifies and decodes one raw report for the device at addr,
// consulting reg for identity, hint and negotiated packet size. ok is false
// when no family recognizes the bytes; the report is then the zero value.
func (c *Classifier) Decode(reg *registry.Registry, addr uint8, data []byte) (pad.Report, bool) {
	if len(data) == 0 {
		return pad.Report{}, false
	}

	vid, pid, haveID := reg.Identity(addr)
	ctx := Context{
		VID:           vid,
		PID:           pid,
		HaveIdentity:  haveID,
		Hint:          reg.Hint(addr),
		MaxPacketSize: reg.MaxPacketSize(addr),
	}

	for _, s := range c.strategies {
		rep, outcome := s(ctx, data)
		switch outcome {
		case Decoded:
			return rep, true
		case Drop:
			return pad.Report{}, false
		}
	}
	return pad.Report{}, false
}

// ByHint routes devices whose family was pinned during enumeration. The
// hint always outranks identity and shape heuristics: Xbox One input is
// intentionally left undecoded, and a hinted Switch Pro goes to the Switch
// decoder no matter what the registry says about its VID/PID.
func ByHint(ctx Context, data []byte) (pad.Report, Outcome) {
	switch ctx.Hint {
	case registry.HintXboxOne:
		return pad.Report{}, Drop
	case registry.HintSwitchPro:
		return claim(nintendo.Decode(data))
	default:
		return pad.Report{}, Pass
	}
}

// ByIdentity routes by registered VID/PID.
func ByIdentity(ctx Context, data []byte) (pad.Report, Outcome) {
	if !ctx.HaveIdentity {
		return pad.Report{}, Pass
	}

	switch ctx.VID {
	case sony.VendorID:
		return claim(sony.Decode(ctx.PID, data))
	case nintendo.VendorID:
		return claim(nintendo.Decode(data))
	default:
		return pad.Report{}, Pass
	}
}

// Catch-all plausibility bounds: a gamepad report ID is typically 0x01-0x04
// and at least one axis should rest near center (~128).
const (
	catchAllMinReportID = 0x01
	catchAllMaxReportID = 0x04
	catchAllAxisLow     = 96
	catchAllAxisHigh    = 160
	catchAllMinLen      = 9
)

// ByEndpointSize is the last resort for devices with no hint and no known
// identity: route by the input endpoint's max packet size and the report
// length.
func ByEndpointSize(ctx Context, data []byte) (pad.Report, Outcome) {
	switch ctx.MaxPacketSize {
	case 8:
		if len(data) == generic.ReportLen8 {
			return generic.Decode8(data), Decoded
		}
		if len(data) == generic.ReportLen3 {
			return generic.Decode3(data), Decoded
		}

	case 32:
		if len(data) == xbox360.ReportLen {
			return xbox360.Decode(data), Decoded
		}
	}

	// Catch-all for unknown controllers: many DirectInput-style pads and
	// adapters send a report ID followed by four axis bytes and buttons in
	// DS4-compatible layout. Accept those only when they look plausible,
	// so keyboard or mouse reports that happen to start with a small byte
	// stay rejected.
	if len(data) >= 8 && ctx.MaxPacketSize >= 8 {
		if id := data[0]; id >= catchAllMinReportID && id <= catchAllMaxReportID {
			if anyAxisCentered(data[1:]) && len(data) >= catchAllMinLen {
				return sony.DecodeDualShock4(data), Decoded
			}
		}
	}

	return pad.Report{}, Drop
}

// anyAxisCentered checks the first four axis bytes for one near-center
// value.
func anyAxisCentered(axes []byte) bool {
	for i := 0; i < 4 && i < len(axes); i++ {
		if axes[i] >= catchAllAxisLow && axes[i] <= catchAllAxisHigh {
			return true
		}
	}
	return false
}

func claim(r pad.Report, ok bool) (pad.Report, Outcome) {
	if !ok {
		return pad.Report{}, Drop
	}
	return r, Decoded
}
