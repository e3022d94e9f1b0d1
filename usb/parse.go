package usb

import (
	"encoding/binary"
	"errors"
	"unicode/utf16"
)

// Parse errors.
var (
	ErrShortDescriptor = errors.New("usb: descriptor shorter than declared")
	ErrDescriptorType  = errors.New("usb: unexpected descriptor type")
)

// DescLen returns the bLength of the descriptor starting at the head of buf,
// or 0 when buf is empty.
func DescLen(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	return int(buf[0])
}

// DescType returns the bDescriptorType of the descriptor starting at the
// head of buf, or 0 when it is too short to carry one.
func DescType(buf []byte) uint8 {
	if len(buf) < 2 {
		return 0
	}
	return buf[1]
}

// NextDesc advances past the descriptor at the head of buf. A zero or
// overlong bLength yields nil, ending iteration.
func NextDesc(buf []byte) []byte {
	n := DescLen(buf)
	if n == 0 || n > len(buf) {
		return nil
	}
	return buf[n:]
}

// ParseDeviceDescriptor decodes the 18-byte standard device descriptor.
func ParseDeviceDescriptor(buf []byte) (DeviceDescriptor, error) {
	var d DeviceDescriptor
	if len(buf) < DeviceDescLen {
		return d, ErrShortDescriptor
	}
	if buf[1] != DeviceDescType {
		return d, ErrDescriptorType
	}
	d.BcdUSB = binary.LittleEndian.Uint16(buf[2:4])
	d.BDeviceClass = buf[4]
	d.BDeviceSubClass = buf[5]
	d.BDeviceProtocol = buf[6]
	d.BMaxPacketSize0 = buf[7]
	d.IDVendor = binary.LittleEndian.Uint16(buf[8:10])
	d.IDProduct = binary.LittleEndian.Uint16(buf[10:12])
	d.BcdDevice = binary.LittleEndian.Uint16(buf[12:14])
	d.IManufacturer = buf[14]
	d.IProduct = buf[15]
	d.ISerialNumber = buf[16]
	d.BNumConfigurations = buf[17]
	return d, nil
}

// ParseConfigTotalLength reads wTotalLength from a configuration descriptor
// header.
func ParseConfigTotalLength(buf []byte) (uint16, error) {
	if len(buf) < 4 {
		return 0, ErrShortDescriptor
	}
	if buf[1] != ConfigDescType {
		return 0, ErrDescriptorType
	}
	return binary.LittleEndian.Uint16(buf[2:4]), nil
}

// ParseInterface decodes the interface descriptor at the head of buf.
func ParseInterface(buf []byte) (InterfaceDescriptor, error) {
	var i InterfaceDescriptor
	if len(buf) < InterfaceDescLen {
		return i, ErrShortDescriptor
	}
	if buf[1] != InterfaceDescType {
		return i, ErrDescriptorType
	}
	i.BInterfaceNumber = buf[2]
	i.BAlternateSetting = buf[3]
	i.BNumEndpoints = buf[4]
	i.BInterfaceClass = buf[5]
	i.BInterfaceSubClass = buf[6]
	i.BInterfaceProtocol = buf[7]
	i.IInterface = buf[8]
	return i, nil
}

// ParseEndpoint decodes the endpoint descriptor at the head of buf without
// checking its type tag; callers inspect DescType themselves because some
// families (Xbox One) deviate from the standard layout.
func ParseEndpoint(buf []byte) (EndpointDescriptor, error) {
	var e EndpointDescriptor
	if len(buf) < EndpointDescLen {
		return e, ErrShortDescriptor
	}
	e.BEndpointAddress = buf[2]
	e.BMAttributes = buf[3]
	e.WMaxPacketSize = binary.LittleEndian.Uint16(buf[4:6])
	e.BInterval = buf[6]
	return e, nil
}

// DecodeStringDescriptor converts a raw USB string descriptor (UTF-16LE
// payload) to a Go string for log output. Malformed input yields an empty
// string.
func DecodeStringDescriptor(buf []byte) string {
	if len(buf) < 2 || buf[1] != StringDescType {
		return ""
	}
	n := int(buf[0])
	if n > len(buf) {
		n = len(buf)
	}
	if n < 4 {
		return ""
	}
	units := make([]uint16, 0, (n-2)/2)
	for i := 2; i+1 < n; i += 2 {
		units = append(units, binary.LittleEndian.Uint16(buf[i:i+2]))
	}
	return string(utf16.Decode(units))
}
