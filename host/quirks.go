package host

import (
	"fmt"

	"github.com/padhost/padhost/registry"
	"github.com/padhost/padhost/usb"
)

// Family-specific enumeration commands. These are fire-and-forget: no
// response is parsed and a failure leaves the device in a degraded but
// attached state.
var (
	// xboxOneStartInput tells an Xbox One controller to start sending
	// input reports.
	xboxOneStartInput = []byte{0x05, 0x20, 0x03, 0x01, 0x00}

	// switchHandshake and switchForceUSB switch a Pro Controller into
	// USB-only mode so it stops waiting for a Bluetooth link and times
	// out.
	switchHandshake = []byte{0x80, 0x02}
	switchForceUSB  = []byte{0x80, 0x04}
)

// runEnumerationQuirks opens an OUT endpoint and issues the handshake or
// mode-switch commands a hinted family needs before its reports are usable.
// Devices without a hint need nothing here.
func (h *Host) runEnumerationQuirks(addr uint8, ep usb.EndpointDescriptor) {
	hint := h.reg.Hint(addr)
	if hint != registry.HintXboxOne && hint != registry.HintSwitchPro {
		return
	}

	if err := h.transport.OpenEndpoint(addr, ep); err != nil {
		h.logger.Error("failed to open OUT endpoint", "addr", addr, "ep", fmt.Sprintf("0x%02x", ep.BEndpointAddress), "error", err)
		return
	}

	switch hint {
	case registry.HintXboxOne:
		h.waitEndpointIdle(addr, ep.BEndpointAddress)
		h.sendCommand(addr, ep.BEndpointAddress, xboxOneStartInput)

	case registry.HintSwitchPro:
		h.waitEndpointIdle(addr, ep.BEndpointAddress)
		h.sendCommand(addr, ep.BEndpointAddress, switchHandshake)

		h.waitEndpointIdle(addr, ep.BEndpointAddress)
		h.sendCommand(addr, ep.BEndpointAddress, switchForceUSB)

		h.logger.Info("switch pro USB mode activated", "addr", addr)
	}
}

// waitEndpointIdle blocks until the endpoint has no outstanding transfer,
// spinning the transport's cooperative poll loop so completions for other
// devices keep draining.
func (h *Host) waitEndpointIdle(addr, epAddr uint8) {
	for h.transport.EndpointBusy(addr, epAddr) {
		h.transport.Task()
	}
}

// sendCommand queues a fixed command packet on an OUT endpoint. The data is
// copied so callers may reuse the shared command slices.
func (h *Host) sendCommand(addr, epAddr uint8, data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)

	t := Transfer{
		Addr:   addr,
		EpAddr: epAddr,
		Buf:    buf,
		Len:    len(buf),
	}
	if err := h.transport.Submit(t); err != nil {
		h.logger.Error("enumeration command failed", "addr", addr, "ep", fmt.Sprintf("0x%02x", epAddr), "error", err)
	}
}
