package host

import (
	"errors"

	"github.com/padhost/padhost/registry"
)

// ErrPoolExhausted is returned when every transfer buffer is owned.
var ErrPoolExhausted = errors.New("host: transfer buffer pool exhausted")

const (
	poolSize = 4
	bufSize  = 64
)

// bufferPool is a fixed arena of read buffers. Each buffer is owned by at
// most one device address while that device is attached; owner 0 means
// free.
type bufferPool struct {
	bufs  [poolSize][bufSize]byte
	owner [poolSize]uint8
}

// alloc assigns the first free buffer to addr. Address 0 is the free
// sentinel and can never own a buffer.
func (p *bufferPool) alloc(addr uint8) ([]byte, error) {
	if addr == 0 {
		return nil, registry.ErrInvalidAddress
	}
	for i := range p.owner {
		if p.owner[i] == 0 {
			p.owner[i] = addr
			return p.bufs[i][:], nil
		}
	}
	return nil, ErrPoolExhausted
}

// free releases every buffer owned by addr. Releasing all of them keeps the
// pool consistent even if an address ever ends up owning more than one.
func (p *bufferPool) free(addr uint8) {
	if addr == 0 {
		return
	}
	for i := range p.owner {
		if p.owner[i] == addr {
			p.owner[i] = 0
		}
	}
}
