// Package registry tracks per-slot identity for attached controllers:
// address, VID/PID, the one-shot classification hint raised during
// enumeration and the negotiated input-endpoint packet size.
package registry

import "errors"

// MaxDevices is the number of addressable device slots. Addresses are
// 1-based, matching USB device addressing.
const MaxDevices = 4

// ErrInvalidAddress is returned for operations on addresses outside
// 1..MaxDevices.
var ErrInvalidAddress = errors.New("registry: device address out of range")

// Hint marks a controller family that was identified during enumeration and
// needs routing that overrides later identity and heuristic checks. It is
// set at most once per attachment and cleared on detach.
type Hint uint8

const (
	HintNone Hint = iota
	HintXboxOne
	HintSwitchPro
)

func (h Hint) String() string {
	switch h {
	case HintXboxOne:
		return "xbox-one"
	case HintSwitchPro:
		return "switch-pro"
	default:
		return "none"
	}
}

type slot struct {
	vid, pid      uint16
	hint          Hint
	maxPacketSize uint16
}

// Registry holds the device slots. The zero value is ready to use. It is
// owned by the hosting application and passed into classification calls;
// it performs no locking of its own (see the host package for the
// serialization contract).
type Registry struct {
	slots [MaxDevices]slot
}

func (r *Registry) index(addr uint8) (int, bool) {
	if addr == 0 || addr > MaxDevices {
		return 0, false
	}
	return int(addr) - 1, true
}

// InitDevice records identity for a newly attached device. Calling it again
// for the same address overwrites the previous entry.
func (r *Registry) InitDevice(addr uint8, vid, pid uint16) error {
	i, ok := r.index(addr)
	if !ok {
		return ErrInvalidAddress
	}
	r.slots[i] = slot{vid: vid, pid: pid}
	return nil
}

// FreeDevice clears the slot for a detached device, including its hint and
// packet size.
func (r *Registry) FreeDevice(addr uint8) error {
	i, ok := r.index(addr)
	if !ok {
		return ErrInvalidAddress
	}
	r.slots[i] = slot{}
	return nil
}

// Identity returns the VID/PID recorded for addr. ok is false when the
// address is out of range or the slot was never initialized (a zero VID is
// the uninitialized sentinel).
func (r *Registry) Identity(addr uint8) (vid, pid uint16, ok bool) {
	i, idxOK := r.index(addr)
	if !idxOK || r.slots[i].vid == 0 {
		return 0, 0, false
	}
	return r.slots[i].vid, r.slots[i].pid, true
}

// SetHint raises the classification hint for addr. The hint is one-shot:
// once a slot carries a hint other than HintNone it keeps it until the
// device detaches.
func (r *Registry) SetHint(addr uint8, h Hint) {
	i, ok := r.index(addr)
	if !ok {
		return
	}
	if r.slots[i].hint == HintNone {
		r.slots[i].hint = h
	}
}

// Hint returns the classification hint for addr.
func (r *Registry) Hint(addr uint8) Hint {
	i, ok := r.index(addr)
	if !ok {
		return HintNone
	}
	return r.slots[i].hint
}

// SetMaxPacketSize records the negotiated max packet size of the device's
// input endpoint.
func (r *Registry) SetMaxPacketSize(addr uint8, size uint16) {
	i, ok := r.index(addr)
	if !ok {
		return
	}
	r.slots[i].maxPacketSize = size
}

// MaxPacketSize returns the recorded input-endpoint packet size, or 0 when
// none was negotiated.
func (r *Registry) MaxPacketSize(addr uint8) uint16 {
	i, ok := r.index(addr)
	if !ok {
		return 0
	}
	return r.slots[i].maxPacketSize
}
