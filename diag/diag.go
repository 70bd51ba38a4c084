// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

// Package diag renders microcbor buffers as RFC 8949 section 8 diagnostic
// notation for documentation and debugging. All actual interchange happens
// in the binary format.
//
// Only base16 notation is used for binary values:
//
//	h'12345678' // supported
//	b32'CI2FM6A' or b64'EjRWeA' // not supported
//
// Example:
//
//	s, _ := diag.FromCBOR(c.Buffer()[:c.BytesSerialized()])
package diag

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors
var (
	ErrInvalidInput = errors.New("diag: unexpected input")
	ErrTrailingData = errors.New("diag: trailing data after item")
)

// FromCBOR renders one CBOR item as a diagnostic string. The full input
// must be consumed; truncated headers, unsupported header widths, and
// leftover bytes are errors.
func FromCBOR(data []byte) (string, error) {
	var b strings.Builder
	r := &reader{buf: data}
	if err := r.item(&b); err != nil {
		return "", err
	}
	if r.off != len(data) {
		return "", fmt.Errorf("%w: %d bytes", ErrTrailingData, len(data)-r.off)
	}
	return b.String(), nil
}

// headerWidths matches the codec's width table: minor values 24..27 carry
// 1, 2, 4, or 8 trailing bytes; 28..31 are unsupported.
var headerWidths = [32]int{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1,
	2, 3, 5, 9,
	0, 0, 0, 0,
}

type reader struct {
	buf []byte
	off int
}

// header consumes one major/value header.
func (r *reader) header() (major, minor byte, value uint64, err error) {
	if r.off >= len(r.buf) {
		return 0, 0, 0, fmt.Errorf("%w: truncated header", ErrInvalidInput)
	}
	first := r.buf[r.off]
	major, minor = first>>5, first&0x1f
	width := headerWidths[minor]
	if width == 0 || r.off+width > len(r.buf) {
		return 0, 0, 0, fmt.Errorf("%w: bad header at offset %d", ErrInvalidInput, r.off)
	}
	p := r.buf[r.off+1:]
	switch width {
	case 1:
		value = uint64(minor)
	case 2:
		value = uint64(p[0])
	case 3:
		value = uint64(binary.BigEndian.Uint16(p))
	case 5:
		value = uint64(binary.BigEndian.Uint32(p))
	case 9:
		value = binary.BigEndian.Uint64(p)
	}
	r.off += width
	return major, minor, value, nil
}

func (r *reader) payload(n uint64) ([]byte, error) {
	if n > uint64(len(r.buf)-r.off) {
		return nil, fmt.Errorf("%w: truncated payload", ErrInvalidInput)
	}
	p := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return p, nil
}

func (r *reader) item(b *strings.Builder) error {
	major, minor, value, err := r.header()
	if err != nil {
		return err
	}

	switch major {
	case 0: // unsigned integer
		b.WriteString(strconv.FormatUint(value, 10))

	case 1: // negative integer, stored as -1 - value
		if value > math.MaxInt64 {
			return fmt.Errorf("%w: negative integer out of range", ErrInvalidInput)
		}
		b.WriteString(strconv.FormatInt(-1-int64(value), 10))

	case 2: // byte string
		p, err := r.payload(value)
		if err != nil {
			return err
		}
		b.WriteString("h'")
		b.WriteString(hex.EncodeToString(p))
		b.WriteString("'")

	case 3: // text string
		p, err := r.payload(value)
		if err != nil {
			return err
		}
		d, err := json.Marshal(string(p))
		if err != nil {
			return err
		}
		b.Write(d)

	case 4: // array
		b.WriteString("[")
		for i := uint64(0); i < value; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := r.item(b); err != nil {
				return err
			}
		}
		b.WriteString("]")

	case 5: // map
		b.WriteString("{")
		for i := uint64(0); i < value; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := r.item(b); err != nil {
				return err
			}
			b.WriteString(": ")
			if err := r.item(b); err != nil {
				return err
			}
		}
		b.WriteString("}")

	case 6: // tag
		b.WriteString(strconv.FormatUint(value, 10))
		b.WriteString("(")
		if err := r.item(b); err != nil {
			return err
		}
		b.WriteString(")")

	case 7: // simple values and floats
		switch minor {
		case 20:
			b.WriteString("false")
		case 21:
			b.WriteString("true")
		case 22:
			b.WriteString("null")
		case 23:
			b.WriteString("undefined")
		case 26:
			f := math.Float32frombits(uint32(value))
			b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
		case 27:
			b.WriteString(strconv.FormatFloat(math.Float64frombits(value), 'g', -1, 64))
		default:
			return fmt.Errorf("%w: unsupported simple value %d", ErrInvalidInput, minor)
		}
	}

	return nil
}
