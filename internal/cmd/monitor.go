package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/padhost/padhost/host"
	"github.com/padhost/padhost/internal/log"
	"github.com/padhost/padhost/pad"
	"github.com/padhost/padhost/transport/libusb"
)

// Monitor attaches to every controller the transport can open and prints
// each decoded report.
type Monitor struct {
	ReadTimeout time.Duration `help:"Per-poll read timeout for interrupt IN transfers" default:"50ms" env:"PADHOST_READ_TIMEOUT"`
}

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport := libusb.New(libusb.Config{ReadTimeout: m.ReadTimeout}, logger)

	h := host.New(transport, host.Handlers{
		OnConnect: func(addr uint8, vid, pid uint16) {
			logger.Info("controller connected", "addr", addr, "vid", fmt.Sprintf("%04x", vid), "pid", fmt.Sprintf("%04x", pid))
		},
		OnDisconnect: func(addr uint8) {
			logger.Info("controller disconnected", "addr", addr)
		},
		OnReport: func(addr uint8, report pad.Report) {
			logger.Info("report", "addr", addr, "state", report.String())
		},
	}, logger, rawLogger)

	transport.OnAttach = h.Attach
	transport.OnDetach = h.Detach

	if err := h.Init(); err != nil {
		return err
	}
	defer transport.Close()

	logger.Info("monitoring; press ctrl-c to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			transport.Task()
		}
	}
}
