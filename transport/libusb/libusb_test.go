package libusb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/padhost/padhost/host"
)

// fakeInEndpoint serves one canned report, then times out forever. A nil
// report times out from the start.
type fakeInEndpoint struct {
	report []byte
	err    error
	reads  int
}

func (f *fakeInEndpoint) ReadContext(ctx context.Context, buf []byte) (int, error) {
	f.reads++
	if f.err != nil {
		return 0, f.err
	}
	if f.report == nil {
		return 0, context.DeadlineExceeded
	}
	n := copy(buf, f.report)
	f.report = nil
	return n, nil
}

type fakeOutEndpoint struct {
	writes [][]byte
}

func (f *fakeOutEndpoint) Write(buf []byte) (int, error) {
	f.writes = append(f.writes, append([]byte(nil), buf...))
	return len(buf), nil
}

func testTransport(in *fakeInEndpoint, out *fakeOutEndpoint) *Transport {
	tr := New(Config{ReadTimeout: time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	tr.devices[1] = &device{
		inEps:  map[uint8]inEndpoint{0x81: in},
		outEps: map[uint8]outEndpoint{0x01: out},
	}
	return tr
}

func TestTaskSkipsTimedOutReadForQueuedWrite(t *testing.T) {
	in := &fakeInEndpoint{}
	out := &fakeOutEndpoint{}
	tr := testTransport(in, out)

	// A silent IN read sits at the head of the queue, the way a Switch
	// Pro's report read does before its handshake command goes out.
	assert.NoError(t, tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x81, Buf: make([]byte, 64), Len: 64}))
	assert.NoError(t, tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x01, Buf: []byte{0x80, 0x02}, Len: 2}))

	assert.True(t, tr.EndpointBusy(1, 0x01))

	// One pass must reach the write even though the read never completes.
	tr.Task()

	if assert.Len(t, out.writes, 1) {
		assert.Equal(t, []byte{0x80, 0x02}, out.writes[0])
	}
	assert.False(t, tr.EndpointBusy(1, 0x01))

	// The read is still pending, not dropped.
	assert.True(t, tr.EndpointBusy(1, 0x81))
	assert.Greater(t, in.reads, 0)
}

func TestWaitStyleSpinDrainsWritesBehindSilentRead(t *testing.T) {
	in := &fakeInEndpoint{}
	out := &fakeOutEndpoint{}
	tr := testTransport(in, out)

	assert.NoError(t, tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x81, Buf: make([]byte, 64), Len: 64}))
	assert.NoError(t, tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x01, Buf: []byte{0x80, 0x02}, Len: 2}))
	assert.NoError(t, tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x01, Buf: []byte{0x80, 0x04}, Len: 2}))

	// The host's wait-for-idle loop: spin Task until the OUT endpoint
	// drains. Bounded so a regression fails instead of hanging.
	for i := 0; tr.EndpointBusy(1, 0x01); i++ {
		if !assert.Less(t, i, 10, "OUT endpoint never drained") {
			return
		}
		tr.Task()
	}

	assert.Equal(t, [][]byte{{0x80, 0x02}, {0x80, 0x04}}, out.writes)
}

func TestTaskCompletesRead(t *testing.T) {
	in := &fakeInEndpoint{report: []byte{0x3F, 0x02, 0x00, 0x08, 0x80, 0x80, 0x80, 0x80}}
	tr := testTransport(in, &fakeOutEndpoint{})

	var results []host.Result
	buf := make([]byte, 64)
	assert.NoError(t, tr.Submit(host.Transfer{
		Addr: 1, EpAddr: 0x81, Buf: buf, Len: 64,
		Done: func(res host.Result) { results = append(results, res) },
	}))

	tr.Task()

	if assert.Len(t, results, 1) {
		assert.True(t, results[0].OK)
		assert.Equal(t, 8, results[0].ActualLen)
		assert.Equal(t, uint8(0x3F), buf[0])
	}
	assert.False(t, tr.EndpointBusy(1, 0x81))
}

func TestTaskFatalReadDetaches(t *testing.T) {
	in := &fakeInEndpoint{err: errors.New("pipe stalled")}
	tr := testTransport(in, &fakeOutEndpoint{})

	var detached []uint8
	tr.OnDetach = func(addr uint8) { detached = append(detached, addr) }

	var results []host.Result
	assert.NoError(t, tr.Submit(host.Transfer{
		Addr: 1, EpAddr: 0x81, Buf: make([]byte, 64), Len: 64,
		Done: func(res host.Result) { results = append(results, res) },
	}))
	// A command queued behind the dying read is dropped with the device.
	assert.NoError(t, tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x01, Buf: []byte{0x80, 0x02}, Len: 2}))

	tr.Task()

	assert.Equal(t, []uint8{1}, detached)
	if assert.Len(t, results, 1) {
		assert.False(t, results[0].OK)
	}
	assert.Empty(t, tr.queue)
	assert.False(t, tr.EndpointBusy(1, 0x81))
}

func TestSubmitValidation(t *testing.T) {
	tr := testTransport(&fakeInEndpoint{}, &fakeOutEndpoint{})

	err := tr.Submit(host.Transfer{Addr: 2, EpAddr: 0x81, Buf: make([]byte, 8), Len: 8})
	assert.ErrorIs(t, err, ErrNotAttached)

	err = tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x82, Buf: make([]byte, 8), Len: 8})
	assert.ErrorIs(t, err, ErrEndpointNotOpen)

	err = tr.Submit(host.Transfer{Addr: 1, EpAddr: 0x02, Buf: []byte{0x00}, Len: 1})
	assert.ErrorIs(t, err, ErrEndpointNotOpen)
}
