// Package log wires padhost's two logging channels: the structured
// slog.Logger for lifecycle and decode events, and the RawLogger hex-dump
// stream for raw input reports.
//
// Console output is split so shell redirection works as expected: records
// below error level go to stdout, errors to stderr. A log file, when
// configured, receives everything.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below debug and additionally mirrors raw report dumps to
// stdout when no raw log file is configured.
const LevelTrace slog.Level = -8

// ParseLevel maps the CLI level names onto slog levels. Unknown names fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitHandler routes records below error level to out and the rest to
// err.
type splitHandler struct {
	out, err slog.Handler
}

func (s splitHandler) pick(level slog.Level) slog.Handler {
	if level >= slog.LevelError {
		return s.err
	}
	return s.out
}

func (s splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.pick(level).Enabled(ctx, level)
}

func (s splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.pick(r.Level).Handle(ctx, r)
}

func (s splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return splitHandler{out: s.out.WithAttrs(attrs), err: s.err.WithAttrs(attrs)}
}

func (s splitHandler) WithGroup(name string) slog.Handler {
	return splitHandler{out: s.out.WithGroup(name), err: s.err.WithGroup(name)}
}

// teeHandler duplicates every record to each handler. Used to keep console
// output alive alongside a log file.
type teeHandler struct {
	hs []slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range t.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r)
		}
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(t.hs))
	for i, h := range t.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return teeHandler{hs: out}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(t.hs))
	for i, h := range t.hs {
		out[i] = h.WithGroup(name)
	}
	return teeHandler{hs: out}
}

// Setup builds both loggers from the CLI logging flags and returns any
// opened files so the caller can close them on exit.
//
// Raw report dumps go to rawFile when set, to stdout when the level is
// trace, and nowhere otherwise.
func Setup(level, file, rawFile string) (*slog.Logger, RawLogger, []io.Closer, error) {
	lvl := ParseLevel(level)

	console := splitHandler{
		out: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}),
		err: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}),
	}

	var closers []io.Closer
	handler := slog.Handler(console)

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, nil, err
		}
		closers = append(closers, f)
		handler = teeHandler{hs: []slog.Handler{
			console,
			slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}),
		}}
	}
	logger := slog.New(handler)

	var raw RawLogger
	switch {
	case rawFile != "":
		f, err := os.OpenFile(rawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", rawFile, "error", err)
			raw = NewRaw(nil)
		} else {
			closers = append(closers, f)
			raw = NewRaw(f)
		}
	case lvl <= LevelTrace:
		raw = NewRaw(os.Stdout)
	default:
		raw = NewRaw(nil)
	}

	return logger, raw, closers, nil
}
