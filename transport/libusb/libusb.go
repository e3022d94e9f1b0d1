// Package libusb implements the host.Transport surface on top of
// github.com/google/gousb. It scans the bus once at Init, assigns 1-based
// slot addresses in discovery order and pumps all transfers from Task so
// every callback into the host stays on the caller's goroutine.
package libusb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/gousb"

	"github.com/padhost/padhost/host"
	"github.com/padhost/padhost/registry"
	"github.com/padhost/padhost/usb"
)

// Standard control-request constants used for raw descriptor fetches.
const (
	reqGetDescriptor = 0x06

	descValueDevice = 0x0100
	descValueConfig = 0x0200
	descValueString = 0x0300

	maxDescriptorLen = 512
)

var (
	ErrNotAttached     = errors.New("libusb: no device at address")
	ErrEndpointNotOpen = errors.New("libusb: endpoint not open")
)

// Config tunes the adapter.
type Config struct {
	// ReadTimeout bounds one Task-driven IN transfer attempt. A timeout is
	// not a completion; the transfer stays queued.
	ReadTimeout time.Duration
}

type pendingTransfer struct {
	t host.Transfer
}

// inEndpoint and outEndpoint are the slices of gousb's endpoint types the
// adapter uses; tests substitute fakes.
type inEndpoint interface {
	ReadContext(ctx context.Context, buf []byte) (int, error)
}

type outEndpoint interface {
	Write(buf []byte) (int, error)
}

type device struct {
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface

	inEps  map[uint8]inEndpoint
	outEps map[uint8]outEndpoint
}

// Transport adapts gousb to host.Transport.
type Transport struct {
	logger  *slog.Logger
	cfg     Config
	usbCtx  *gousb.Context
	devices map[uint8]*device
	queue   []*pendingTransfer

	// OnAttach and OnDetach must be set before Init; the adapter reports
	// discovered and failed devices through them.
	OnAttach func(addr uint8)
	OnDetach func(addr uint8)
}

// New builds an adapter. A zero Config gets a 50ms read timeout.
func New(cfg Config, logger *slog.Logger) *Transport {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 50 * time.Millisecond
	}
	return &Transport{
		logger:  logger,
		cfg:     cfg,
		devices: make(map[uint8]*device),
	}
}

// Init opens the libusb context and scans the bus. Every device that can be
// opened and claimed gets a slot address and an OnAttach notification.
func (t *Transport) Init() error {
	t.usbCtx = gousb.NewContext()

	devs, err := t.usbCtx.OpenDevices(func(*gousb.DeviceDesc) bool { return true })
	if err != nil && len(devs) == 0 {
		return fmt.Errorf("libusb: scanning bus: %w", err)
	}

	addr := uint8(1)
	for _, d := range devs {
		if addr > registry.MaxDevices {
			d.Close()
			continue
		}

		cfg, err := d.Config(1)
		if err != nil {
			d.Close()
			continue
		}
		intf, err := cfg.Interface(0, 0)
		if err != nil {
			cfg.Close()
			d.Close()
			continue
		}

		t.devices[addr] = &device{
			dev:    d,
			cfg:    cfg,
			intf:   intf,
			inEps:  make(map[uint8]inEndpoint),
			outEps: make(map[uint8]outEndpoint),
		}
		if t.OnAttach != nil {
			t.OnAttach(addr)
		}
		addr++
	}
	return nil
}

// Close detaches every device and releases the libusb context.
func (t *Transport) Close() {
	for addr, d := range t.devices {
		d.close()
		delete(t.devices, addr)
		if t.OnDetach != nil {
			t.OnDetach(addr)
		}
	}
	if t.usbCtx != nil {
		_ = t.usbCtx.Close()
	}
}

func (d *device) close() {
	if d.intf != nil {
		d.intf.Close()
	}
	if d.cfg != nil {
		d.cfg.Close()
	}
	if d.dev != nil {
		_ = d.dev.Close()
	}
}

func (t *Transport) getDescriptor(addr uint8, value uint16, index uint16) ([]byte, error) {
	d, ok := t.devices[addr]
	if !ok {
		return nil, ErrNotAttached
	}
	buf := make([]byte, maxDescriptorLen)
	n, err := d.dev.Control(gousb.ControlIn|gousb.ControlStandard|gousb.ControlDevice,
		reqGetDescriptor, value, index, buf)
	if err != nil {
		return nil, fmt.Errorf("libusb: get descriptor %04x: %w", value, err)
	}
	return buf[:n], nil
}

func (t *Transport) DeviceDescriptor(addr uint8) ([]byte, error) {
	return t.getDescriptor(addr, descValueDevice, 0)
}

func (t *Transport) StringDescriptor(addr uint8, index uint8, langID uint16) ([]byte, error) {
	return t.getDescriptor(addr, descValueString|uint16(index), langID)
}

func (t *Transport) ConfigurationDescriptor(addr uint8) ([]byte, error) {
	return t.getDescriptor(addr, descValueConfig, 0)
}

func (t *Transport) OpenEndpoint(addr uint8, ep usb.EndpointDescriptor) error {
	d, ok := t.devices[addr]
	if !ok {
		return ErrNotAttached
	}
	num := int(ep.BEndpointAddress &^ usb.EndpointDirIn)
	if ep.IsIn() {
		in, err := d.intf.InEndpoint(num)
		if err != nil {
			return fmt.Errorf("libusb: open IN endpoint %d: %w", num, err)
		}
		d.inEps[ep.BEndpointAddress] = in
		return nil
	}
	out, err := d.intf.OutEndpoint(num)
	if err != nil {
		return fmt.Errorf("libusb: open OUT endpoint %d: %w", num, err)
	}
	d.outEps[ep.BEndpointAddress] = out
	return nil
}

func (t *Transport) EndpointBusy(addr uint8, epAddr uint8) bool {
	for _, p := range t.queue {
		if p.t.Addr == addr && p.t.EpAddr == epAddr {
			return true
		}
	}
	return false
}

// Submit queues a transfer; Task performs it. OUT transfers must target an
// opened endpoint, IN transfers an opened IN endpoint.
func (t *Transport) Submit(tr host.Transfer) error {
	d, ok := t.devices[tr.Addr]
	if !ok {
		return ErrNotAttached
	}
	if tr.EpAddr&usb.EndpointDirIn != 0 {
		if _, ok := d.inEps[tr.EpAddr]; !ok {
			return ErrEndpointNotOpen
		}
	} else if _, ok := d.outEps[tr.EpAddr]; !ok {
		return ErrEndpointNotOpen
	}
	t.queue = append(t.queue, &pendingTransfer{t: tr})
	return nil
}

// Task walks the queue until one transfer completes, delivering its
// completion inline. IN reads that merely time out stay queued but do not
// block the entries behind them: a silent endpoint never completes, yet an
// OUT command submitted after its read still goes out on the same pass.
func (t *Transport) Task() {
	for i := 0; i < len(t.queue); i++ {
		p := t.queue[i]

		d, ok := t.devices[p.t.Addr]
		if !ok {
			t.pop(p, host.Result{})
			return
		}

		if p.t.EpAddr&usb.EndpointDirIn != 0 {
			ep := d.inEps[p.t.EpAddr]
			ctx, cancel := context.WithTimeout(context.Background(), t.cfg.ReadTimeout)
			n, err := ep.ReadContext(ctx, p.t.Buf[:p.t.Len])
			cancel()
			switch {
			case err == nil:
				t.pop(p, host.Result{OK: true, ActualLen: n})
			case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gousb.TransferTimedOut):
				// Nothing to read yet; leave it queued and try the next
				// entry.
				continue
			default:
				// Detach first so the completion lands on a freed slot and
				// the host does not resubmit into a dead device.
				t.logger.Warn("read failed, detaching device", "addr", p.t.Addr, "error", err)
				t.detach(p.t.Addr)
				t.pop(p, host.Result{})
			}
			return
		}

		ep := d.outEps[p.t.EpAddr]
		n, err := ep.Write(p.t.Buf[:p.t.Len])
		if err != nil {
			t.logger.Warn("write failed", "addr", p.t.Addr, "ep", fmt.Sprintf("0x%02x", p.t.EpAddr), "error", err)
			t.pop(p, host.Result{})
			return
		}
		t.pop(p, host.Result{OK: true, ActualLen: n})
		return
	}
}

// pop removes the transfer from the queue and fires its completion.
func (t *Transport) pop(p *pendingTransfer, res host.Result) {
	for i, q := range t.queue {
		if q == p {
			t.queue = append(t.queue[:i], t.queue[i+1:]...)
			break
		}
	}
	if p.t.Done != nil {
		p.t.Done(res)
	}
}

func (t *Transport) detach(addr uint8) {
	d, ok := t.devices[addr]
	if !ok {
		return
	}
	d.close()
	delete(t.devices, addr)

	// Drop any remaining queued transfers for the address.
	keep := t.queue[:0]
	for _, q := range t.queue {
		if q.t.Addr != addr {
			keep = append(keep, q)
		}
	}
	t.queue = keep

	if t.OnDetach != nil {
		t.OnDetach(addr)
	}
}
