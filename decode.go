// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package microcbor

import (
	"math"
	"unsafe"
)

// Get looks up an integer field. If the key is absent, the field is not an
// integer, or the buffer is invalid, defaultValue is returned; lookups
// never fail visibly. The sign is re-derived from the major type, so any
// stored width decodes into any integer type (with wrapping on overflow,
// as in a plain conversion).
func Get[T Integer](c *Codec, name string, defaultValue T) T {
	info := c.findElement(name)
	switch info.major {
	case unsignedIntMajorType:
		return T(c.fieldValue(info))
	case negativeIntMajorType:
		return T(-int64(c.fieldValue(info)) - 1)
	}
	return defaultValue
}

// GetBool looks up a boolean field, returning defaultValue when the key is
// absent or the field is not a boolean simple value.
func (c *Codec) GetBool(name string, defaultValue bool) bool {
	info := c.findElement(name)
	if info.major != simpleMajorType {
		return defaultValue
	}
	switch info.minor {
	case falseVal:
		return false
	case trueVal:
		return true
	}
	return defaultValue
}

// GetFloat32 looks up a float32 field, returning defaultValue when the key
// is absent or the field is not a 4-byte float simple value.
func (c *Codec) GetFloat32(name string, defaultValue float32) float32 {
	info := c.findElement(name)
	if info.major == simpleMajorType && info.minor == singleFloat {
		return math.Float32frombits(uint32(c.fieldValue(info)))
	}
	return defaultValue
}

// GetFloat64 looks up a float64 field, returning defaultValue when the key
// is absent or the field is not an 8-byte float simple value.
func (c *Codec) GetFloat64(name string, defaultValue float64) float64 {
	info := c.findElement(name)
	if info.major == simpleMajorType && info.minor == doubleFloat {
		return math.Float64frombits(c.fieldValue(info))
	}
	return defaultValue
}

// GetString returns a view of a string field without copying. The result
// aliases the codec's buffer and is only valid for the buffer's lifetime.
// A trailing NUL added by a null-terminating encoder is not included.
func (c *Codec) GetString(name, defaultValue string) string {
	info := c.findElement(name)
	if info.major != textStringMajorType {
		return defaultValue
	}
	start, n, ok := c.payload(info)
	if !ok {
		return defaultValue
	}
	if n > 0 && c.buf[start+n-1] == 0 {
		n--
	}
	if n == 0 {
		return ""
	}
	return unsafe.String(&c.buf[start], n)
}

// GetBytes returns a view of a byte-string field's payload without
// copying, ignoring any type tag. The result aliases the codec's buffer.
func (c *Codec) GetBytes(name string, defaultValue []byte) []byte {
	info := c.findElement(name)
	if info.major != byteStringMajorType {
		return defaultValue
	}
	start, n, ok := c.payload(info)
	if !ok {
		return defaultValue
	}
	return c.buf[start : start+n : start+n]
}

// GetSlice returns a zero-copy view over a typed array field. The field
// matches only when its resolved tag equals the tag for T; otherwise
// defaultValue is returned. The view aliases the codec's buffer and
// reinterprets the payload in native byte order, exactly as AddSlice
// stored it.
func GetSlice[T Element](c *Codec, name string, defaultValue []T) []T {
	info := c.findElement(name)
	if info.tag != tagOf[T]() {
		return defaultValue
	}
	var z T
	size := int(unsafe.Sizeof(z))
	start, numRawBytes, ok := c.payload(info)
	if !ok || numRawBytes%size != 0 {
		return defaultValue
	}
	if numRawBytes == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&c.buf[start])), numRawBytes/size)
}

// GetLength returns a field's length: the payload byte count for byte
// strings and typed arrays, the character count for strings (excluding an
// encoder-added NUL terminator), or the pair count for maps. Absent fields,
// and string or byte payloads whose declared length overruns the buffer,
// report 0.
func (c *Codec) GetLength(name string) int {
	info := c.findElement(name)
	switch info.major {
	case errorMajorType:
		return 0
	case byteStringMajorType, textStringMajorType:
		start, n, ok := c.payload(info)
		if !ok {
			return 0
		}
		if info.major == textStringMajorType && n > 0 && c.buf[start+n-1] == 0 {
			n--
		}
		return n
	}
	length := c.fieldValue(info)
	if length > uint64(math.MaxInt) {
		return 0
	}
	return int(length)
}

// GetMap returns a new read-only Codec scoped to a nested map field, or an
// empty Codec when the key is absent or the field is not a map. The view
// shares the parent's bytes; no data is copied.
func (c *Codec) GetMap(name string) *Codec {
	info := c.findElement(name)
	if info.major != mapMajorType {
		return NewReadOnly(nil)
	}
	return NewReadOnly(c.buf[info.off:])
}

// payload bounds-checks a field's declared byte length against the rest of
// the buffer, returning the payload's start offset and byte count. The
// comparison stays in uint64 so an oversized 8-byte length header cannot
// wrap the arithmetic into an in-range int.
func (c *Codec) payload(info fieldInfo) (start, n int, ok bool) {
	start = info.off + info.headerBytes
	length := c.fieldValue(info)
	if length > uint64(len(c.buf)-start) {
		return start, 0, false
	}
	return start, int(length), true
}

// findElement scans the map at the cursor for a key. Keys are compared
// with terminator semantics (see keyMatch) so names padded for array
// alignment still match. The cursor is restored to the map's start before
// returning, making repeated lookups independent and order-insensitive.
func (c *Codec) findElement(name string) fieldInfo {
	mapOff := c.off
	info := c.nextField()
	if info.major != mapMajorType {
		c.off = mapOff
		return errField()
	}

	numItems := c.fieldValue(info)
	c.off = info.off + info.headerBytes
	for ; numItems > 0; numItems-- {
		key := c.nextField()
		if key.major == errorMajorType {
			break
		}
		if key.major == textStringMajorType {
			start, keyLen, ok := c.payload(key)
			if !ok {
				break
			}
			if keyMatch(name, c.buf[start:start+keyLen]) {
				c.skipField(key)
				value := c.nextField()
				c.off = mapOff
				return value
			}
		}
		c.skipField(key)
		value := c.nextField()
		if value.major == errorMajorType {
			break
		}
		c.skipField(value)
	}

	c.off = mapOff
	return errField()
}

// keyMatch compares a lookup name against stored key bytes up to the first
// zero byte in either operand. Zero padding appended for array alignment
// acts as an effective terminator, so the unpadded name still matches.
func keyMatch(name string, key []byte) bool {
	if len(name) > len(key) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if key[i] != name[i] {
			return false
		}
	}
	return len(key) == len(name) || key[len(name)] == 0
}

// skipField advances the cursor past a fully-described field. Strings skip
// their payload; maps and arrays recursively skip every contained element.
func (c *Codec) skipField(info fieldInfo) {
	length := c.fieldValue(info)
	c.off = info.off + info.headerBytes
	if c.off >= len(c.buf) {
		return
	}

	switch info.major {
	case byteStringMajorType, textStringMajorType:
		if length > uint64(len(c.buf)-c.off) {
			c.off = len(c.buf)
			return
		}
		c.off += int(length)
	case mapMajorType:
		for ; length > 0; length-- {
			key := c.nextField()
			if key.major == errorMajorType {
				return
			}
			c.skipField(key)
			value := c.nextField()
			if value.major == errorMajorType {
				return
			}
			c.skipField(value)
		}
	case arrayMajorType:
		for ; length > 0; length-- {
			elem := c.nextField()
			if elem.major == errorMajorType {
				return
			}
			c.skipField(elem)
		}
	}
}
