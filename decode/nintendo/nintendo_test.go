package nintendo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padhost/padhost/decode/nintendo"
	"github.com/padhost/padhost/pad"
)

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"short report", make([]byte, nintendo.MinReportLen-1)},
		{"unknown report id", append([]byte{0x21}, make([]byte, 11)...)},
		{"full id but truncated", append([]byte{nintendo.ReportIDFull}, make([]byte, 10)...)},
		{"empty", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := nintendo.Decode(tc.data)
			assert.False(t, ok)
		})
	}
}

func TestDecodeFull(t *testing.T) {
	// 0x30 report: timer, battery, three button bytes, two 12-bit packed
	// stick pairs. Left stick at center (2048/2048), right stick pinned
	// right (4095) and up (0).
	data := []byte{
		0x30,
		0x00, 0x00,
		0x44, // B + R
		0x12, // plus + home
		0x06, // dpad up + right
		0x00, 0x08, 0x80,
		0xFF, 0x0F, 0x00,
	}

	r, ok := nintendo.Decode(data)
	assert.True(t, ok)

	assert.True(t, r.Cross)
	assert.False(t, r.Circle)
	assert.True(t, r.R1)
	assert.False(t, r.R2)
	assert.True(t, r.Start)
	assert.True(t, r.System)
	assert.False(t, r.Select)
	assert.Equal(t, pad.DPadNE, r.DPad)

	assert.Equal(t, uint8(0x80), r.X)
	assert.Equal(t, uint8(0x7F), r.Y) // vertical axis inverted
	assert.Equal(t, uint8(0xFF), r.Z)
	assert.Equal(t, uint8(0xFF), r.RZ)
}

func TestDecodeFullDPadSynthesis(t *testing.T) {
	cases := []struct {
		name     string
		btnLeft  uint8
		expected pad.DPad
	}{
		{"released", 0x00, pad.DPadReleased},
		{"up", 0x02, pad.DPadN},
		{"down", 0x01, pad.DPadS},
		{"left", 0x08, pad.DPadW},
		{"right", 0x04, pad.DPadE},
		{"up+right", 0x06, pad.DPadNE},
		{"down+right", 0x05, pad.DPadSE},
		{"down+left", 0x09, pad.DPadSW},
		{"up+left", 0x0A, pad.DPadNW},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := make([]byte, nintendo.FullReportLen)
			data[0] = nintendo.ReportIDFull
			data[5] = tc.btnLeft

			r, ok := nintendo.Decode(data)
			assert.True(t, ok)
			assert.Equal(t, tc.expected, r.DPad)
		})
	}
}

func TestDecodeSimple(t *testing.T) {
	data := []byte{
		0x3F,
		0x81, // Y + ZR
		0x21, // minus + capture
		0x02, // hat east
		0x10, 0x20, 0x30, 0x40,
	}

	r, ok := nintendo.Decode(data)
	assert.True(t, ok)

	assert.True(t, r.Square)
	assert.True(t, r.R2)
	assert.True(t, r.Select)
	assert.True(t, r.Extra)
	assert.False(t, r.System)
	assert.Equal(t, pad.DPadE, r.DPad)
	assert.Equal(t, uint8(0x10), r.X)
	assert.Equal(t, uint8(0x20), r.Y)
	assert.Equal(t, uint8(0x30), r.Z)
	assert.Equal(t, uint8(0x40), r.RZ)
}

func TestDecodeSimpleHatClamp(t *testing.T) {
	data := []byte{0x3F, 0x00, 0x00, 0x0F, 0x80, 0x80, 0x80, 0x80}

	r, ok := nintendo.Decode(data)
	assert.True(t, ok)
	assert.Equal(t, pad.DPadReleased, r.DPad)
}
