package usb_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padhost/padhost/usb"
)

func TestParseDeviceDescriptorRoundTrip(t *testing.T) {
	d := usb.DeviceDescriptor{
		BcdUSB:             0x0200,
		BMaxPacketSize0:    64,
		IDVendor:           0x054C,
		IDProduct:          0x09CC,
		BcdDevice:          0x0100,
		IManufacturer:      1,
		IProduct:           2,
		ISerialNumber:      0,
		BNumConfigurations: 1,
	}

	got, err := usb.ParseDeviceDescriptor(d.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestParseDeviceDescriptorErrors(t *testing.T) {
	_, err := usb.ParseDeviceDescriptor(make([]byte, usb.DeviceDescLen-1))
	assert.ErrorIs(t, err, usb.ErrShortDescriptor)

	bad := usb.DeviceDescriptor{}.Bytes()
	bad[1] = usb.ConfigDescType
	_, err = usb.ParseDeviceDescriptor(bad)
	assert.ErrorIs(t, err, usb.ErrDescriptorType)
}

func TestParseConfigTotalLength(t *testing.T) {
	var b bytes.Buffer
	usb.ConfigHeader{WTotalLength: 41, BNumInterfaces: 1, BConfigurationValue: 1}.Write(&b)

	total, err := usb.ParseConfigTotalLength(b.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, uint16(41), total)

	_, err = usb.ParseConfigTotalLength([]byte{0x09})
	assert.ErrorIs(t, err, usb.ErrShortDescriptor)

	_, err = usb.ParseConfigTotalLength([]byte{0x09, usb.DeviceDescType, 0x00, 0x00})
	assert.ErrorIs(t, err, usb.ErrDescriptorType)
}

func TestParseInterface(t *testing.T) {
	var b bytes.Buffer
	usb.InterfaceDescriptor{
		BInterfaceNumber: 2,
		BNumEndpoints:    2,
		BInterfaceClass:  0x03,
	}.Write(&b)

	i, err := usb.ParseInterface(b.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, uint8(2), i.BInterfaceNumber)
	assert.Equal(t, uint8(2), i.BNumEndpoints)
	assert.Equal(t, uint8(0x03), i.BInterfaceClass)
}

func TestParseEndpoint(t *testing.T) {
	var b bytes.Buffer
	usb.EndpointDescriptor{
		BEndpointAddress: 0x84,
		BMAttributes:     0x03,
		WMaxPacketSize:   64,
		BInterval:        5,
	}.Write(&b)

	e, err := usb.ParseEndpoint(b.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x84), e.BEndpointAddress)
	assert.Equal(t, uint16(64), e.WMaxPacketSize)
	assert.True(t, e.IsIn())

	e.BEndpointAddress = 0x03
	assert.False(t, e.IsIn())
}

func TestDescIteration(t *testing.T) {
	var b bytes.Buffer
	usb.InterfaceDescriptor{BNumEndpoints: 1}.Write(&b)
	usb.EndpointDescriptor{BEndpointAddress: 0x81, WMaxPacketSize: 8}.Write(&b)
	buf := b.Bytes()

	assert.Equal(t, usb.InterfaceDescLen, usb.DescLen(buf))
	assert.Equal(t, uint8(usb.InterfaceDescType), usb.DescType(buf))

	next := usb.NextDesc(buf)
	assert.Equal(t, uint8(usb.EndpointDescType), usb.DescType(next))

	// A zero bLength ends iteration instead of looping forever.
	assert.Nil(t, usb.NextDesc([]byte{0x00, 0x05}))
	assert.Nil(t, usb.NextDesc(nil))

	// A bLength past the end of the buffer also ends it.
	assert.Nil(t, usb.NextDesc([]byte{0x09, 0x04, 0x00}))
}

func TestStringDescriptorRoundTrip(t *testing.T) {
	raw := usb.EncodeStringDescriptor("Wireless Controller")
	assert.Equal(t, "Wireless Controller", usb.DecodeStringDescriptor(raw))
}

func TestDecodeStringDescriptorMalformed(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong type", []byte{0x04, usb.ConfigDescType, 'a', 0x00}},
		{"header only", []byte{0x02, usb.StringDescType}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, "", usb.DecodeStringDescriptor(tc.data))
		})
	}
}

func TestDecodeStringDescriptorTruncated(t *testing.T) {
	// The declared bLength exceeds the bytes on hand; decode only what is
	// there.
	raw := usb.EncodeStringDescriptor("Pad")
	raw[0] = 0x20
	assert.Equal(t, "Pad", usb.DecodeStringDescriptor(raw))
}
