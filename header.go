// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package microcbor

import (
	"encoding/binary"
	"math"
)

// headerWidths maps a header's minor value to the total header width in
// bytes. Minor values below 24 are literals; 24..27 carry 1, 2, 4, or 8
// trailing big-endian bytes. 28..31 (reserved and indefinite-length
// markers) are unsupported and map to 0.
var headerWidths = [32]int{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1,
	2, 3, 5, 9,
	0, 0, 0, 0,
}

// fieldInfo describes one decoded header: the major/minor pair, the total
// header width, the header's byte offset, and the resolved semantic tag of
// a preceding tag header (TagNone when the value was untagged).
type fieldInfo struct {
	tag         uint16
	major       byte
	minor       byte
	headerBytes int
	off         int
}

func errField() fieldInfo {
	return fieldInfo{tag: TagNone, major: errorMajorType}
}

// headerWidth returns the number of header bytes needed to encode n as a
// length or count.
func headerWidth(n uint64) int {
	switch {
	case n < 24:
		return 1
	case n < 256:
		return 2
	case n < 65536:
		return 3
	case n <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// encodeHeader writes a major-type header with the minimal width for n.
func (c *Codec) encodeHeader(major byte, n uint64) {
	switch {
	case n < 24:
		if c.reserve(1) {
			c.buf[c.off] = major<<5 | byte(n)
			c.off++
		}
	case n < 256:
		c.encodeFixed8(major<<5|oneByteAdditional, uint8(n))
	case n < 65536:
		c.encodeFixed16(major<<5|twoBytesAdditional, uint16(n))
	case n <= math.MaxUint32:
		c.encodeFixed32(major<<5|fourBytesAdditional, uint32(n))
	default:
		c.encodeFixed64(major<<5|eightBytesAdditional, n)
	}
}

// encodeTag writes a tag header. Tags below 24 take one byte, below 256
// two bytes, and otherwise three.
func (c *Codec) encodeTag(tag uint16) {
	switch {
	case tag < 24:
		if c.reserve(1) {
			c.buf[c.off] = tagMajorType<<5 | byte(tag)
			c.off++
		}
	case tag < 256:
		c.encodeFixed8(tagMajorType<<5|oneByteAdditional, uint8(tag))
	default:
		c.encodeFixed16(tagMajorType<<5|twoBytesAdditional, tag)
	}
}

// Fixed-width header encoders: one leading byte followed by the value in
// big-endian order.

func (c *Codec) encodeFixed8(head byte, v uint8) {
	if c.reserve(2) {
		c.buf[c.off] = head
		c.buf[c.off+1] = v
		c.off += 2
	}
}

func (c *Codec) encodeFixed16(head byte, v uint16) {
	if c.reserve(3) {
		c.buf[c.off] = head
		binary.BigEndian.PutUint16(c.buf[c.off+1:], v)
		c.off += 3
	}
}

func (c *Codec) encodeFixed32(head byte, v uint32) {
	if c.reserve(5) {
		c.buf[c.off] = head
		binary.BigEndian.PutUint32(c.buf[c.off+1:], v)
		c.off += 5
	}
}

func (c *Codec) encodeFixed64(head byte, v uint64) {
	if c.reserve(9) {
		c.buf[c.off] = head
		binary.BigEndian.PutUint64(c.buf[c.off+1:], v)
		c.off += 9
	}
}

// nextField decodes the header at the cursor without consuming it. When
// the header is a tag, the cursor advances past the tag and the wrapped
// value's header is returned with its tag resolved. A header that would
// extend past the buffer, or uses an unsupported width, yields an
// error-typed descriptor.
func (c *Codec) nextField() fieldInfo {
	if c.off >= len(c.buf) {
		return errField()
	}
	first := c.buf[c.off]
	minor := first & fiveBitMask
	width := headerWidths[minor]
	if width == 0 || c.off+width > len(c.buf) {
		return errField()
	}
	info := fieldInfo{
		tag:         TagNone,
		major:       first >> 5,
		minor:       minor,
		headerBytes: width,
		off:         c.off,
	}
	if info.major != tagMajorType {
		return info
	}

	// The tagged value follows immediately; return its header annotated
	// with the resolved tag.
	tag := c.fieldValue(info)
	c.off += width
	wrapped := c.nextField()
	if wrapped.major == errorMajorType {
		return wrapped
	}
	if tag < uint64(TagNone) {
		wrapped.tag = uint16(tag)
	}
	return wrapped
}

// fieldValue interprets a header's trailing bytes (or the minor value
// itself for one-byte headers) as an unsigned big-endian integer.
func (c *Codec) fieldValue(info fieldInfo) uint64 {
	p := c.buf[info.off+1:]
	switch info.headerBytes {
	case 1:
		return uint64(info.minor)
	case 2:
		return uint64(p[0])
	case 3:
		return uint64(binary.BigEndian.Uint16(p))
	case 5:
		return uint64(binary.BigEndian.Uint32(p))
	case 9:
		return binary.BigEndian.Uint64(p)
	}
	return 0
}
