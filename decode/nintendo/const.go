package nintendo

// VendorID is Nintendo's USB vendor ID.
const VendorID = 0x057E

// Product IDs that get the Switch Pro treatment during enumeration.
const (
	PIDJoyConL   = 0x2006
	PIDJoyConR   = 0x2007
	PIDSwitchPro = 0x2009
)

// Input report IDs. The full report is sent after the USB init handshake;
// the simple report comes from controllers that never completed it (or from
// Switch-compatible third-party pads that only implement the simple form).
const (
	ReportIDFull   = 0x30
	ReportIDSimple = 0x3F
)

const (
	MinReportLen    = 8
	FullReportLen   = 12
	SimpleReportLen = 8
)

// Full report (0x30) button bitmasks.
// Reference: dekuNukem/Nintendo_Switch_Reverse_Engineering
const (
	fullBtnRightY  = 0x01
	fullBtnRightX  = 0x02
	fullBtnRightB  = 0x04
	fullBtnRightA  = 0x08
	fullBtnRightR  = 0x40
	fullBtnRightZR = 0x80

	fullBtnMidMinus   = 0x01
	fullBtnMidPlus    = 0x02
	fullBtnMidRStick  = 0x04
	fullBtnMidLStick  = 0x08
	fullBtnMidHome    = 0x10
	fullBtnMidCapture = 0x20

	fullBtnLeftDown  = 0x01
	fullBtnLeftUp    = 0x02
	fullBtnLeftRight = 0x04
	fullBtnLeftLeft  = 0x08
	fullBtnLeftL     = 0x40
	fullBtnLeftZL    = 0x80
)

// Simple report (0x3F) button bitmasks.
const (
	simpleBtnY  = 0x01
	simpleBtnB  = 0x02
	simpleBtnA  = 0x04
	simpleBtnX  = 0x08
	simpleBtnL  = 0x10
	simpleBtnR  = 0x20
	simpleBtnZL = 0x40
	simpleBtnZR = 0x80

	simpleBtnMinus   = 0x01
	simpleBtnPlus    = 0x02
	simpleBtnLStick  = 0x04
	simpleBtnRStick  = 0x08
	simpleBtnHome    = 0x10
	simpleBtnCapture = 0x20
)
