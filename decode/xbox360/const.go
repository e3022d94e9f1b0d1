package xbox360

// ReportLen is the wired controller's input report length. The heuristic
// dispatcher only calls this decoder for 20-byte reports on a 32-byte
// endpoint.
const ReportLen = 20

// Byte 2: dpad nibble plus start/select and stick clicks.
const (
	btnStart  = 0x10
	btnSelect = 0x20
	btnLThumb = 0x40
	btnRThumb = 0x80
)

// Byte 3: bumpers, guide and face buttons.
const (
	btnLShoulder = 0x01
	btnRShoulder = 0x02
	btnGuide     = 0x04
	btnA         = 0x10
	btnB         = 0x20
	btnX         = 0x40
	btnY         = 0x80
)

// TriggerThreshold is the analog trigger value above which L2/R2 count as
// pressed.
const TriggerThreshold = 128

// Report byte offsets.
const (
	offDPadButtons = 2
	offButtons     = 3
	offLTrigger    = 4
	offRTrigger    = 5
	offAxes        = 6
)
