package sony

// VendorID is Sony Interactive Entertainment's USB vendor ID.
const VendorID = 0x054C

// Known product IDs. Unknown Sony PIDs (clones included) fall back to the
// DualShock 4 layout.
const (
	PIDDualShock4V1  = 0x05C4 // CUH-ZCT1
	PIDDualShock4V2  = 0x09CC // CUH-ZCT2
	PIDDualSense     = 0x0CE6
	PIDDualSenseEdge = 0x0DF2
)

const (
	// ReportIDInput starts every USB input report of both families.
	ReportIDInput = 0x01

	// MinReportLen is the shortest report either decoder accepts.
	MinReportLen = 10
)

// DualSense input report offsets. Axes sit right after the report ID;
// two analog-trigger bytes and a sequence byte separate them from the
// button bitmasks.
const (
	dsOffAxes           = 1
	dsOffDPadButtons    = 8
	dsOffTriggerButtons = 9
	dsOffExtraButtons   = 10
)
