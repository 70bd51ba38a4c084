// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package microcbor

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// StartMap opens a map scope. An empty name writes no key header, so a
// top-level map or a list-style nested map can be opened bare. numElements
// is a hint for the pair count; if the final count differs, EndMap patches
// the header in place. The hint fixes the header width: a map that ends up
// needing a wider count header than the hint reserved fails with
// ErrMapCountWidth, so hint at least 24 when a map may hold 24+ pairs.
func (c *Codec) StartMap(name string, numElements uint64) error {
	if !c.writable() {
		return c.err
	}
	if c.open >= MaxNesting {
		if c.err == nil {
			c.err = ErrNestingTooDeep
		}
		return c.err
	}
	c.encodeMapKey(name)
	c.maps[c.open] = mapScope{startPos: c.off, declared: numElements}
	c.open++
	c.encodeHeader(mapMajorType, numElements)
	return c.err
}

// EndMap closes the innermost map scope. If the observed pair count
// differs from the hint given to StartMap, the count header at the map's
// start offset is overwritten with the true count, re-encoded in the width
// reserved by the hint. Calling EndMap with no open scope is a no-op.
func (c *Codec) EndMap() error {
	if !c.writable() || c.open == 0 {
		return c.err
	}
	c.open--
	m := c.maps[c.open]
	if c.err != nil || m.count == m.declared {
		return c.err
	}
	reserved := headerWidth(m.declared)
	if headerWidth(m.count) > reserved {
		c.err = ErrMapCountWidth
		return c.err
	}
	switch reserved {
	case 1:
		c.buf[m.startPos] = mapMajorType<<5 | byte(m.count)
	case 2:
		c.buf[m.startPos] = mapMajorType<<5 | oneByteAdditional
		c.buf[m.startPos+1] = byte(m.count)
	case 3:
		c.buf[m.startPos] = mapMajorType<<5 | twoBytesAdditional
		binary.BigEndian.PutUint16(c.buf[m.startPos+1:], uint16(m.count))
	case 5:
		c.buf[m.startPos] = mapMajorType<<5 | fourBytesAdditional
		binary.BigEndian.PutUint32(c.buf[m.startPos+1:], uint32(m.count))
	case 9:
		c.buf[m.startPos] = mapMajorType<<5 | eightBytesAdditional
		binary.BigEndian.PutUint64(c.buf[m.startPos+1:], m.count)
	}
	return c.err
}

// Add appends an integer key/value pair. The header width follows the
// static size of T, not the value's magnitude, so identical call sequences
// always produce identically laid-out output. Use AddMinimal for the
// smallest encoding instead.
func Add[T Integer](c *Codec, name string, value T) error {
	if !c.writable() {
		return c.err
	}
	c.encodeMapKey(name)
	major := unsignedIntMajorType
	u := uint64(value)
	if value < 0 {
		// CBOR negative integers store -1 - value
		major = negativeIntMajorType
		u = uint64(^value)
	}
	switch unsafe.Sizeof(value) {
	case 8:
		c.encodeFixed64(major<<5|eightBytesAdditional, u)
	case 4:
		c.encodeFixed32(major<<5|fourBytesAdditional, uint32(u))
	case 2:
		c.encodeFixed16(major<<5|twoBytesAdditional, uint16(u))
	default:
		c.encodeFixed8(major<<5|oneByteAdditional, uint8(u))
	}
	return c.err
}

// AddMinimal appends an integer key/value pair using the smallest header
// that holds the value's magnitude. This trades the fixed-offset layout of
// Add for smaller output.
func AddMinimal[T Integer](c *Codec, name string, value T) error {
	if !c.writable() {
		return c.err
	}
	c.encodeMapKey(name)
	if value >= 0 {
		c.encodeHeader(unsignedIntMajorType, uint64(value))
	} else {
		c.encodeHeader(negativeIntMajorType, uint64(^value))
	}
	return c.err
}

// AddBool appends a boolean key/value pair as a one-byte simple value.
func (c *Codec) AddBool(name string, value bool) error {
	if !c.writable() {
		return c.err
	}
	c.encodeMapKey(name)
	b := simpleMajorType<<5 | falseVal
	if value {
		b = simpleMajorType<<5 | trueVal
	}
	if c.reserve(1) {
		c.buf[c.off] = b
		c.off++
	}
	return c.err
}

// AddFloat32 appends a float key/value pair, stored as the IEEE-754 bit
// pattern in a fixed 4-byte simple value.
func (c *Codec) AddFloat32(name string, value float32) error {
	if !c.writable() {
		return c.err
	}
	c.encodeMapKey(name)
	c.encodeFixed32(simpleMajorType<<5|fourBytesAdditional, math.Float32bits(value))
	return c.err
}

// AddFloat64 appends a float key/value pair, stored as the IEEE-754 bit
// pattern in a fixed 8-byte simple value.
func (c *Codec) AddFloat64(name string, value float64) error {
	if !c.writable() {
		return c.err
	}
	c.encodeMapKey(name)
	c.encodeFixed64(simpleMajorType<<5|eightBytesAdditional, math.Float64bits(value))
	return c.err
}

// AddString appends a string key/value pair. With null termination on
// (the default for read-write construction) one extra NUL byte is encoded
// after the string so a zero-copy reader can treat the payload as a
// conventional terminated string. Value strings must not contain NUL
// bytes themselves.
func (c *Codec) AddString(name, value string) error {
	if !c.writable() {
		return c.err
	}
	c.encodeMapKey(name)
	c.encodeString(value, c.nullTerminate)
	return c.err
}

// AddSlice appends a typed contiguous array: a tag identifying the element
// type followed by a byte string holding the raw element bytes in native
// byte order. With align set, the key string is padded with trailing zero
// bytes so the array payload lands on a multiple of the element size and
// can be dereferenced in place by GetSlice without unaligned access.
func AddSlice[T Element](c *Codec, name string, values []T, align bool) error {
	if !c.writable() {
		return c.err
	}
	var z T
	size := int(unsafe.Sizeof(z))
	numRawBytes := len(values) * size

	padding := 0
	if name != "" && align {
		// Exact offset the array payload would land at: everything written
		// so far plus the key header, key, tag header, and length header.
		preamble := func(keyLen int) int {
			return headerWidth(uint64(keyLen)) + keyLen + 2 + headerWidth(uint64(numRawBytes))
		}
		if odd := (c.needed + preamble(len(name))) % size; odd != 0 {
			padding = size - odd
			// Padding can push the key past a header-width boundary and
			// shift the payload by the extra header byte. Re-pad against
			// the padded key length until the offset settles.
			for (c.needed+preamble(len(name)+padding))%size != 0 {
				padding++
			}
		}
	}
	if padding == 0 {
		c.encodeMapKey(name)
	} else {
		if c.open > 0 {
			c.maps[c.open-1].count++
		}
		n := len(name) + padding
		c.encodeHeader(textStringMajorType, uint64(n))
		if c.reserve(n) {
			copy(c.buf[c.off:], name)
			for i := len(name); i < n; i++ {
				c.buf[c.off+i] = 0
			}
			c.off += n
		}
	}

	c.encodeTag(tagOf[T]())
	c.encodeBytes(sliceBytes(values))
	return c.err
}

// encodeMapKey writes a key string and counts the pair in the innermost
// open scope. A nil or empty key writes nothing: the value that follows is
// appended bare, which is how list-style encodings are built.
func (c *Codec) encodeMapKey(name string) {
	if name == "" {
		return
	}
	if c.open > 0 {
		c.maps[c.open-1].count++
	}
	c.encodeString(name, false)
}

func (c *Codec) encodeString(value string, nullTerminate bool) {
	n := len(value)
	if nullTerminate {
		n++
	}
	c.encodeHeader(textStringMajorType, uint64(n))
	if c.reserve(n) {
		copy(c.buf[c.off:], value)
		if nullTerminate {
			c.buf[c.off+len(value)] = 0
		}
		c.off += n
	}
}

func (c *Codec) encodeBytes(b []byte) {
	c.encodeHeader(byteStringMajorType, uint64(len(b)))
	if c.reserve(len(b)) {
		copy(c.buf[c.off:], b)
		c.off += len(b)
	}
}

// sliceBytes reinterprets a numeric slice as its raw bytes without
// copying.
func sliceBytes[T Element](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	var z T
	n := len(values) * int(unsafe.Sizeof(z))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), n)
}
