package host

import (
	"errors"
	"fmt"

	"github.com/padhost/padhost/registry"
	"github.com/padhost/padhost/usb"
)

// ErrProtocolAnomaly marks a configuration descriptor whose interface
// carries an unexpected sub-descriptor. The interface is abandoned; the
// device stays attached but produces no reports.
var ErrProtocolAnomaly = errors.New("host: unexpected descriptor in interface")

// Xbox One controllers announce two endpoints plus a HID descriptor in
// bNumEndpoints but ship a truncated 23-byte interface block where the
// nominal interface+HID+endpoints size would be 32. That mismatch is the
// family's fingerprint.
const (
	xboxOneObservedItfLen = 23
	xboxOneNominalItfLen  = 32
)

// walkConfigDescriptor walks the top-level entries of a full configuration
// descriptor and opens the first interface found. Later interfaces of
// composite devices are skipped: only the first IN endpoint is listened to.
func (h *Host) walkConfigDescriptor(addr uint8, cfg []byte) {
	total, err := usb.ParseConfigTotalLength(cfg)
	if err != nil {
		h.logger.Error("bad configuration descriptor", "addr", addr, "error", err)
		return
	}
	if int(total) < len(cfg) {
		cfg = cfg[:total]
	}

	p := usb.NextDesc(cfg)
	interfaceCount := 0

	for len(p) > 0 {
		// An interface association groups the following bInterfaceCount
		// interfaces as one unit for span accounting.
		assocCount := 1
		if usb.DescType(p) == usb.InterfaceAssocType {
			if len(p) < usb.InterfaceAssocDescLen {
				return
			}
			assocCount = int(p[3])
			p = usb.NextDesc(p)
		}

		if usb.DescType(p) != usb.InterfaceDescType {
			return
		}

		span := interfaceSpanLen(p, assocCount)
		if span < usb.InterfaceDescLen || span > len(p) {
			return
		}

		if interfaceCount == 0 {
			if err := h.openInterface(addr, p[:span]); err != nil {
				h.logger.Warn("interface not opened", "addr", addr, "error", err)
			} else {
				interfaceCount++
			}
		}

		p = p[span:]
	}
}

// interfaceSpanLen computes how many bytes belong to a group of itfCount
// consecutive interfaces: everything up to the next alternate-setting-0
// interface descriptor or the next interface association boundary.
func interfaceSpanLen(buf []byte, itfCount int) int {
	n := 0
	p := buf
	for ; itfCount > 0 && len(p) > 0; itfCount-- {
		n += usb.DescLen(p)
		p = usb.NextDesc(p)

		for n < len(buf) && len(p) > 0 {
			t := usb.DescType(p)
			if t == usb.InterfaceAssocType {
				return n
			}
			if t == usb.InterfaceDescType && len(p) >= 4 && p[3] == 0 {
				break
			}
			n += usb.DescLen(p)
			p = usb.NextDesc(p)
		}
	}
	return n
}

// openInterface opens the endpoints of one interface span: the first IN
// endpoint becomes the report source, OUT endpoints get the enumeration
// quirks of hinted families. It also raises the Xbox One hint from the
// descriptor-length anomaly.
func (h *Host) openInterface(addr uint8, itf []byte) error {
	desc, err := usb.ParseInterface(itf)
	if err != nil {
		return err
	}

	nominal := usb.InterfaceDescLen + usb.HIDDescLen + int(desc.BNumEndpoints)*usb.EndpointDescLen
	if h.reg.Hint(addr) == registry.HintNone &&
		len(itf) == xboxOneObservedItfLen && nominal == xboxOneNominalItfLen {
		h.logger.Info("xbox one controller detected (descriptor mismatch)", "addr", addr)
		h.reg.SetHint(addr, registry.HintXboxOne)
	}

	// Skip the interface descriptor, then the HID class descriptor when one
	// is present. Xbox One interfaces are vendor-class and go straight to
	// their endpoints.
	p := usb.NextDesc(itf)
	if usb.DescType(p) == usb.HIDDescType {
		p = usb.NextDesc(p)
	}

	epInFound := false

	for i := 0; i < int(desc.BNumEndpoints); i++ {
		if len(p) < usb.EndpointDescLen {
			break
		}

		if usb.DescType(p) != usb.EndpointDescType && h.reg.Hint(addr) != registry.HintXboxOne {
			h.logger.Warn("unexpected descriptor type", "addr", addr, "type", fmt.Sprintf("0x%02x", usb.DescType(p)))
			return ErrProtocolAnomaly
		}

		ep, err := usb.ParseEndpoint(p)
		if err != nil {
			break
		}

		if ep.IsIn() && !epInFound {
			if err := h.transport.OpenEndpoint(addr, ep); err != nil {
				h.logger.Error("failed to open IN endpoint", "addr", addr, "ep", fmt.Sprintf("0x%02x", ep.BEndpointAddress), "error", err)
				return err
			}

			buf, err := h.pool.alloc(addr)
			if err != nil {
				return err
			}

			h.reg.SetMaxPacketSize(addr, ep.WMaxPacketSize)
			h.submitRead(addr, ep.BEndpointAddress, buf, int(ep.WMaxPacketSize))
			h.logger.Info("listening", "addr", addr, "ep", fmt.Sprintf("0x%02x", ep.BEndpointAddress))
			epInFound = true
		} else if !ep.IsIn() {
			h.runEnumerationQuirks(addr, ep)
		}

		p = usb.NextDesc(p)
	}

	if !epInFound {
		return fmt.Errorf("host: no IN endpoint on interface %d", desc.BInterfaceNumber)
	}
	return nil
}
