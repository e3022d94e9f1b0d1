// Package host orchestrates attached game controllers: it walks their
// configuration descriptors, runs family-specific enumeration quirks, keeps
// the steady-state read loop going and hands every completed input report
// to the classifier.
package host

import (
	"fmt"
	"log/slog"

	"github.com/padhost/padhost/decode"
	"github.com/padhost/padhost/decode/nintendo"
	"github.com/padhost/padhost/internal/log"
	"github.com/padhost/padhost/pad"
	"github.com/padhost/padhost/registry"
	"github.com/padhost/padhost/usb"
)

const langIDEnglishUS = 0x0409

// Handlers is the upward application surface. Nil members are skipped.
type Handlers struct {
	OnReport     func(addr uint8, report pad.Report)
	OnConnect    func(addr uint8, vid, pid uint16)
	OnDisconnect func(addr uint8)
}

// Host ties the transport, registry, buffer pool and classifier together.
// It must only be driven from serialized transport callbacks (see
// Transport).
type Host struct {
	transport  Transport
	handlers   Handlers
	logger     *slog.Logger
	rawLog     log.RawLogger
	classifier *decode.Classifier

	reg  registry.Registry
	pool bufferPool
}

// New builds a Host. rawLog may be a no-op logger but must not be nil.
func New(t Transport, h Handlers, logger *slog.Logger, rawLog log.RawLogger) *Host {
	return &Host{
		transport:  t,
		handlers:   h,
		logger:     logger,
		rawLog:     rawLog,
		classifier: decode.NewClassifier(),
	}
}

// Init brings up the underlying transport.
func (h *Host) Init() error {
	if err := h.transport.Init(); err != nil {
		return fmt.Errorf("host: transport init: %w", err)
	}
	return nil
}

// DeviceInfo returns the VID/PID of an attached device, ok=false when the
// address holds no initialized device.
func (h *Host) DeviceInfo(addr uint8) (vid, pid uint16, ok bool) {
	return h.reg.Identity(addr)
}

// Attach is the transport's device-attached notification. It fetches and
// parses the device descriptor, registers identity, raises VID/PID-based
// hints and walks the configuration descriptor to open endpoints.
func (h *Host) Attach(addr uint8) {
	h.logger.Info("device attached", "addr", addr)

	if addr == 0 || addr > registry.MaxDevices {
		h.logger.Warn("device address exceeds max", "addr", addr, "max", registry.MaxDevices)
		return
	}

	raw, err := h.transport.DeviceDescriptor(addr)
	if err != nil {
		h.logger.Error("failed to get device descriptor", "addr", addr, "error", err)
		return
	}
	desc, err := usb.ParseDeviceDescriptor(raw)
	if err != nil {
		h.logger.Error("bad device descriptor", "addr", addr, "error", err)
		return
	}

	h.logger.Info("device identified",
		"addr", addr,
		"vid", fmt.Sprintf("%04x", desc.IDVendor),
		"pid", fmt.Sprintf("%04x", desc.IDProduct),
		"manufacturer", h.stringDescriptor(addr, desc.IManufacturer),
		"product", h.stringDescriptor(addr, desc.IProduct))

	if err := h.reg.InitDevice(addr, desc.IDVendor, desc.IDProduct); err != nil {
		h.logger.Error("registry init failed", "addr", addr, "error", err)
		return
	}

	// Switch controllers are identified by VID/PID before any descriptor
	// shape check; they need the USB handshake during enumeration.
	if desc.IDVendor == nintendo.VendorID &&
		(desc.IDProduct == nintendo.PIDSwitchPro ||
			desc.IDProduct == nintendo.PIDJoyConL ||
			desc.IDProduct == nintendo.PIDJoyConR) {
		h.logger.Info("nintendo switch controller detected", "addr", addr)
		h.reg.SetHint(addr, registry.HintSwitchPro)
	}

	if h.handlers.OnConnect != nil {
		h.handlers.OnConnect(addr, desc.IDVendor, desc.IDProduct)
	}

	cfg, err := h.transport.ConfigurationDescriptor(addr)
	if err != nil {
		h.logger.Error("failed to get configuration descriptor", "addr", addr, "error", err)
		return
	}
	h.walkConfigDescriptor(addr, cfg)
}

// Detach is the transport's device-removed notification. It clears the
// registry slot and releases the device's transfer buffers; any still
// outstanding completion for this address becomes a no-op.
func (h *Host) Detach(addr uint8) {
	h.logger.Info("device removed", "addr", addr)

	if err := h.reg.FreeDevice(addr); err != nil {
		h.logger.Warn("registry free failed", "addr", addr, "error", err)
	}
	h.pool.free(addr)

	if h.handlers.OnDisconnect != nil {
		h.handlers.OnDisconnect(addr)
	}
}

// stringDescriptor fetches and decodes a string descriptor for logging;
// failures just yield an empty string.
func (h *Host) stringDescriptor(addr uint8, index uint8) string {
	if index == 0 {
		return ""
	}
	raw, err := h.transport.StringDescriptor(addr, index, langIDEnglishUS)
	if err != nil {
		return ""
	}
	return usb.DecodeStringDescriptor(raw)
}

// submitRead queues the next interrupt IN read. transferLen caps the read;
// it is normally the endpoint's max packet size.
func (h *Host) submitRead(addr, epAddr uint8, buf []byte, transferLen int) {
	if transferLen > len(buf) {
		transferLen = len(buf)
	}
	t := Transfer{
		Addr:   addr,
		EpAddr: epAddr,
		Buf:    buf,
		Len:    transferLen,
		Done: func(res Result) {
			h.onReportTransfer(addr, epAddr, buf, res)
		},
	}
	if err := h.transport.Submit(t); err != nil {
		h.logger.Error("failed to submit read transfer", "addr", addr, "ep", fmt.Sprintf("0x%02x", epAddr), "error", err)
	}
}

// onReportTransfer handles a completed read: decode, deliver, resubmit.
func (h *Host) onReportTransfer(addr, epAddr uint8, buf []byte, res Result) {
	// The device may have detached while the transfer was in flight; its
	// slot (and buffer ownership) is gone, so neither decode nor resubmit.
	if _, _, ok := h.reg.Identity(addr); !ok {
		return
	}

	maxPacket := h.reg.MaxPacketSize(addr)

	if res.OK && res.ActualLen > 0 && res.ActualLen <= len(buf) {
		data := buf[:res.ActualLen]
		h.rawLog.Log(addr, maxPacket, data)

		if report, ok := h.classifier.Decode(&h.reg, addr, data); ok {
			if h.handlers.OnReport != nil {
				h.handlers.OnReport(addr, report)
			}
		}
	}

	// Wired Xbox 360 endpoints stall when asked for more than the 20-byte
	// report even though they advertise 32; resubmit with the observed
	// length for that shape.
	next := int(maxPacket)
	if maxPacket == 32 && res.ActualLen == 20 {
		next = res.ActualLen
	}
	h.submitRead(addr, epAddr, buf, next)
}
