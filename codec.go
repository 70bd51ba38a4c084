// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package microcbor

import (
	"errors"
)

// MaxNesting is the maximum map nesting depth. Opening a map more than
// MaxNesting levels deep is a write error.
const MaxNesting = 4

// Major types (high 3 bits)
const (
	unsignedIntMajorType byte = 0x00
	negativeIntMajorType byte = 0x01
	byteStringMajorType  byte = 0x02
	textStringMajorType  byte = 0x03
	arrayMajorType       byte = 0x04
	mapMajorType         byte = 0x05
	tagMajorType         byte = 0x06
	simpleMajorType      byte = 0x07

	// errorMajorType marks a field descriptor for a truncated or malformed
	// header. It never appears on the wire.
	errorMajorType byte = 0x08
)

// Additional info (low 5 bits)
const (
	oneByteAdditional    byte = 0x18
	twoBytesAdditional   byte = 0x19
	fourBytesAdditional  byte = 0x1a
	eightBytesAdditional byte = 0x1b
)

// Well-known simple values
const (
	falseVal    byte = 0x14
	trueVal     byte = 0x15
	nullVal     byte = 0x16
	singleFloat byte = 0x1a
	doubleFloat byte = 0x1b
)

// Bitmasks
const (
	threeBitMask byte = 0x07
	fiveBitMask  byte = 0x1f
)

// Sentinel errors reported by Err after a failed encode pass. Write errors
// are sticky: the first error latches and later writes become no-ops, but
// BytesNeeded keeps accumulating so a caller can size a replacement buffer.
var (
	ErrBufferTooSmall = errors.New("microcbor: buffer too small")
	ErrReadOnly       = errors.New("microcbor: write to read-only buffer")
	ErrNestingTooDeep = errors.New("microcbor: map nesting exceeds MaxNesting")
	ErrMapCountWidth  = errors.New("microcbor: map count does not fit the header width reserved by the hint")
)

// mapScope tracks one open map so its count header can be backpatched when
// the scope closes.
type mapScope struct {
	startPos int    // offset of the map's own header
	declared uint64 // count hint written at StartMap
	count    uint64 // key/value pairs actually written
}

// Codec encodes and decodes a CBOR subset directly in a caller-supplied
// buffer. It never allocates and never owns the bytes: every string or
// slice it hands out aliases the buffer and shares its lifetime.
//
// A Codec is not safe for concurrent use; multiple read-only Codecs may
// share the same underlying bytes.
type Codec struct {
	buf           []byte
	off           int // read/write cursor
	needed        int // bytes required so far, may exceed len(buf)
	err           error
	readOnly      bool
	nullTerminate bool

	open int // number of open map scopes
	maps [MaxNesting]mapScope
}

// New returns a read-write Codec over buf. Strings are null-terminated on
// the wire so that decoded views can be handed to C-style consumers; use
// SetNullTermination to turn this off.
//
// A nil or empty buf is valid: writes will fail with ErrBufferTooSmall
// while BytesNeeded accumulates the exact size required.
func New(buf []byte) *Codec {
	c := &Codec{nullTerminate: true}
	c.InitBuffer(buf)
	return c
}

// NewReadOnly returns a Codec over buf that can only be used for decoding.
// Any write operation fails with ErrReadOnly and leaves buf untouched.
func NewReadOnly(buf []byte) *Codec {
	c := &Codec{}
	c.InitReadOnly(buf)
	return c
}

// InitBuffer points the Codec at a new read-write buffer and resets all
// encode/decode state. The null-termination setting is preserved.
func (c *Codec) InitBuffer(buf []byte) {
	c.buf = buf
	c.readOnly = false
	c.Restart()
}

// InitReadOnly points the Codec at a new read-only buffer and resets all
// encode/decode state.
func (c *Codec) InitReadOnly(buf []byte) {
	c.buf = buf
	c.readOnly = true
	c.Restart()
}

// Restart resets cursor, error, and nesting state so the same buffer can
// be reused for a fresh decode pass or a new encode pass.
func (c *Codec) Restart() {
	c.off = 0
	c.needed = 0
	c.err = nil
	c.open = 0
}

// SetNullTermination controls whether encoded strings carry a trailing NUL
// byte. It has no effect on data already written.
func (c *Codec) SetNullTermination(on bool) { c.nullTerminate = on }

// Err reports the latched result of an encode pass. A non-nil error means
// no further bytes were emitted after the point of failure; check
// BytesNeeded to size a sufficient buffer.
func (c *Codec) Err() error { return c.err }

// Buffer returns the underlying buffer. The encoded prefix is
// Buffer()[:BytesSerialized()].
func (c *Codec) Buffer() []byte { return c.buf }

// BytesSerialized returns the number of bytes written so far.
func (c *Codec) BytesSerialized() int { return c.off }

// BytesNeeded returns the number of bytes the write sequence required.
// This can exceed BytesSerialized when the buffer was too small, allowing
// a dry-run encode into an empty buffer to probe the needed size.
func (c *Codec) BytesNeeded() int { return c.needed }

// reserve accounts for n bytes of output and reports whether the write may
// proceed. On exhaustion the error latches but accounting continues.
func (c *Codec) reserve(n int) bool {
	c.needed += n
	if c.needed > len(c.buf) {
		if c.err == nil {
			c.err = ErrBufferTooSmall
		}
	}
	return c.err == nil
}

// writable latches ErrReadOnly on write attempts against a read-only view.
func (c *Codec) writable() bool {
	if c.readOnly {
		if c.err == nil {
			c.err = ErrReadOnly
		}
		return false
	}
	return true
}
