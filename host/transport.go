package host

import "github.com/padhost/padhost/usb"

// Result reports the completion of an asynchronous endpoint transfer.
type Result struct {
	OK        bool
	ActualLen int
}

// Transfer describes one asynchronous endpoint transfer. Len is the number
// of bytes to move and never exceeds len(Buf). Done, when non-nil, is
// invoked on completion.
type Transfer struct {
	Addr   uint8
	EpAddr uint8
	Buf    []byte
	Len    int
	Done   func(Result)
}

// Transport is the downward USB surface the host consumes. Implementations
// own device attach/detach notification and deliver both notifications and
// transfer completions through Host.Attach, Host.Detach and Transfer.Done.
//
// All callbacks into the host must be serialized: either everything runs on
// the single goroutine that re-enters Task, or the implementation holds one
// mutex around every callback dispatch. The host performs no locking of its
// own.
type Transport interface {
	// Init brings up the transport. Called once before any other method.
	Init() error

	// DeviceDescriptor fetches the 18-byte device descriptor of addr.
	DeviceDescriptor(addr uint8) ([]byte, error)

	// StringDescriptor fetches the raw string descriptor at index for the
	// given language (UTF-16LE payload).
	StringDescriptor(addr uint8, index uint8, langID uint16) ([]byte, error)

	// ConfigurationDescriptor fetches the full configuration descriptor,
	// including all interface and endpoint sub-descriptors.
	ConfigurationDescriptor(addr uint8) ([]byte, error)

	// OpenEndpoint prepares an endpoint for transfers.
	OpenEndpoint(addr uint8, ep usb.EndpointDescriptor) error

	// EndpointBusy reports whether a transfer is outstanding on the
	// endpoint.
	EndpointBusy(addr uint8, epAddr uint8) bool

	// Submit queues an asynchronous transfer.
	Submit(t Transfer) error

	// Task runs one iteration of the transport's cooperative poll loop,
	// delivering any pending callbacks inline.
	Task()
}
