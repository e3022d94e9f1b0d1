package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name     string
		expected slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, ParseLevel(tc.name), "level %q", tc.name)
	}
}

func TestSplitHandlerRoutesByLevel(t *testing.T) {
	var out, errBuf bytes.Buffer
	logger := slog.New(splitHandler{
		out: slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo}),
		err: slog.NewTextHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	})

	logger.Info("report decoded")
	logger.Warn("unexpected descriptor")
	logger.Error("transfer failed")

	assert.Contains(t, out.String(), "report decoded")
	assert.Contains(t, out.String(), "unexpected descriptor")
	assert.NotContains(t, out.String(), "transfer failed")

	assert.Contains(t, errBuf.String(), "transfer failed")
	assert.NotContains(t, errBuf.String(), "report decoded")
}

func TestTeeHandlerDuplicates(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(teeHandler{hs: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}})

	logger.Info("device attached")
	logger.Warn("interface not opened")

	assert.Contains(t, a.String(), "device attached")
	assert.Contains(t, a.String(), "interface not opened")

	// The second handler filters below its own level.
	assert.NotContains(t, b.String(), "device attached")
	assert.Contains(t, b.String(), "interface not opened")
}

func TestSetupWithFiles(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "padhost.log")
	rawFile := filepath.Join(dir, "reports.log")

	logger, raw, closers, err := Setup("debug", logFile, rawFile)
	assert.NoError(t, err)
	assert.Len(t, closers, 2)

	logger.Info("controller connected")
	raw.Log(1, 64, []byte{0x01, 0x80, 0x7F})

	for _, c := range closers {
		assert.NoError(t, c.Close())
	}

	logData, err := os.ReadFile(logFile)
	assert.NoError(t, err)
	assert.Contains(t, string(logData), "controller connected")

	rawData, err := os.ReadFile(rawFile)
	assert.NoError(t, err)
	assert.Contains(t, string(rawData), "dev 1 [size: 3 max: 64]: 01 80 7f")
}

func TestSetupWithoutFiles(t *testing.T) {
	logger, raw, closers, err := Setup("info", "", "")
	assert.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Empty(t, closers)

	// No raw file and no trace level: raw dumps are discarded.
	raw.Log(1, 64, []byte{0x01})
}

func TestRawLoggerHexFormat(t *testing.T) {
	var buf bytes.Buffer
	raw := NewRaw(&buf)

	raw.Log(2, 32, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "dev 2 [size: 4 max: 32]: de ad be ef\n"), "got %q", line)

	// Empty reports produce no output.
	buf.Reset()
	raw.Log(2, 32, nil)
	assert.Zero(t, buf.Len())
}
