package cmd

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/padhost/padhost/decode"
	"github.com/padhost/padhost/registry"
)

// Decode classifies and decodes one report supplied on the command line.
// Useful for inspecting captured traffic without a device attached.
type Decode struct {
	Data string `arg:"" help:"Report bytes as hex, spaces allowed (e.g. '01 80 7f 80 80 08 00 00 00 00')"`

	VID    string `help:"Device vendor ID (hex)" default:"0"`
	PID    string `help:"Device product ID (hex)" default:"0"`
	Hint   string `help:"Classification hint" enum:"none,xbox-one,switch-pro" default:"none"`
	EpSize uint16 `help:"Input endpoint max packet size" default:"64"`
}

// Run is called by Kong when the decode command is executed.
func (d *Decode) Run(logger *slog.Logger) error {
	data, err := hex.DecodeString(strings.ReplaceAll(d.Data, " ", ""))
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}

	vid, err := parseID(d.VID)
	if err != nil {
		return fmt.Errorf("invalid vid: %w", err)
	}
	pid, err := parseID(d.PID)
	if err != nil {
		return fmt.Errorf("invalid pid: %w", err)
	}

	var reg registry.Registry
	const addr = 1
	if vid != 0 {
		if err := reg.InitDevice(addr, vid, pid); err != nil {
			return err
		}
	}
	reg.SetMaxPacketSize(addr, d.EpSize)
	switch d.Hint {
	case "xbox-one":
		reg.SetHint(addr, registry.HintXboxOne)
	case "switch-pro":
		reg.SetHint(addr, registry.HintSwitchPro)
	}

	report, ok := decode.NewClassifier().Decode(&reg, addr, data)
	if !ok {
		logger.Warn("report not recognized", "len", len(data), "epSize", d.EpSize)
		return nil
	}

	fmt.Println(report.String())
	return nil
}

func parseID(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
