package pad_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padhost/padhost/pad"
)

func TestMarshalBinary(t *testing.T) {
	cases := []struct {
		name     string
		report   pad.Report
		expected []byte
	}{
		{
			name:     "zero value",
			report:   pad.Report{},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "centered sticks dpad released",
			report: pad.Report{
				X: 0x80, Y: 0x80, Z: 0x80, RZ: 0x80,
				DPad: pad.DPadReleased,
			},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00},
		},
		{
			name: "face buttons pack into dpad byte high bits",
			report: pad.Report{
				DPad:   pad.DPadNE,
				Square: true, Cross: true, Circle: true, Triangle: true,
			},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0xF1, 0x00, 0x00, 0x00},
		},
		{
			name: "trigger and meta buttons",
			report: pad.Report{
				DPad: pad.DPadReleased,
				L1:   true, R2: true, Select: true, R3: true,
			},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0x08, 0x99, 0x00, 0x00},
		},
		{
			name: "system and extra",
			report: pad.Report{
				DPad:   pad.DPadReleased,
				System: true, Extra: true,
			},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0x08, 0x00, 0x03, 0x00},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.report.MarshalBinary()
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, b)
		})
	}
}

func TestUnmarshalBinaryRoundTrip(t *testing.T) {
	orig := pad.Report{
		X: 0x12, Y: 0x34, Z: 0x56, RZ: 0x78,
		DPad:   pad.DPadSW,
		Square: true, Triangle: true,
		R1: true, L2: true, Start: true, L3: true,
		System: true,
	}

	b, err := orig.MarshalBinary()
	assert.NoError(t, err)

	var got pad.Report
	assert.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, orig, got)
}

func TestUnmarshalBinaryShort(t *testing.T) {
	var r pad.Report
	err := r.UnmarshalBinary(make([]byte, pad.WireSize-1))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSetDPadButtonsByteClampsDPad(t *testing.T) {
	cases := []struct {
		name     string
		b        uint8
		expected pad.DPad
	}{
		{"north", 0x00, pad.DPadN},
		{"northwest", 0x07, pad.DPadNW},
		{"released", 0x08, pad.DPadReleased},
		{"out of range clamps", 0x0F, pad.DPadReleased},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r pad.Report
			r.SetDPadButtonsByte(tc.b)
			assert.Equal(t, tc.expected, r.DPad)
		})
	}
}

func TestString(t *testing.T) {
	r := pad.Report{
		X: 1, Y: 2, Z: 3, RZ: 4,
		DPad:  pad.DPadNE,
		Cross: true, Start: true,
	}
	assert.Equal(t, "(x, y, z, rz) = (1, 2, 3, 4) DPad = NE Cross Start", r.String())

	r = pad.Report{DPad: pad.DPadReleased}
	assert.Equal(t, "(x, y, z, rz) = (0, 0, 0, 0) DPad = none", r.String())
}
