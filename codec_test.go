// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package microcbor_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/entazza/microcbor"
)

func TestEmptyAndBufferless(t *testing.T) {
	c := microcbor.New(make([]byte, 200))
	if got := microcbor.Get(c, "i32", int32(-1)); got != -1 {
		t.Errorf("empty buffer: expected -1, got %d", got)
	}

	c.StartMap("", 0)
	if err := c.EndMap(); err != nil {
		t.Fatal(err)
	}
	if got := microcbor.Get(c, "i32", int32(-1)); got != -1 {
		t.Errorf("empty map: expected -1, got %d", got)
	}

	var zero microcbor.Codec
	if got := microcbor.Get(&zero, "i32", int32(-1)); got != -1 {
		t.Errorf("bufferless: expected -1, got %d", got)
	}
}

func TestSizeProbe(t *testing.T) {
	encode := func(c *microcbor.Codec) {
		c.StartMap("", 0)
		_ = microcbor.Add(c, "i", int32(12345))
		_ = c.EndMap()
	}

	c := microcbor.New(nil)
	encode(c)
	if err := c.Err(); !errors.Is(err, microcbor.ErrBufferTooSmall) {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
	if c.BytesNeeded() != 8 {
		t.Errorf("expected 8 bytes needed, got %d", c.BytesNeeded())
	}

	// Re-running the identical sequence into a buffer of the probed size
	// must succeed exactly.
	c.InitBuffer(make([]byte, c.BytesNeeded()))
	encode(c)
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	if c.BytesSerialized() != c.BytesNeeded() {
		t.Errorf("expected serialized == needed, got %d != %d",
			c.BytesSerialized(), c.BytesNeeded())
	}

	c.Restart()
	if got := microcbor.Get(c, "i", int32(0)); got != 12345 {
		t.Errorf("expected 12345, got %d", got)
	}
}

func TestErrorLatchesAndAccumulates(t *testing.T) {
	// A 4-byte buffer fits the map header and key but not the value.
	// The error latches, no further bytes are emitted, and the needed
	// count keeps growing across subsequent writes.
	buf := []byte{0xee, 0xee, 0xee, 0xee}
	c := microcbor.New(buf)
	c.StartMap("", 0)
	_ = microcbor.Add(c, "i", int32(12345))
	_ = microcbor.Add(c, "j", int32(67890))
	if err := c.EndMap(); !errors.Is(err, microcbor.ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
	if c.BytesNeeded() != 15 {
		t.Errorf("expected 15 bytes needed, got %d", c.BytesNeeded())
	}
	if c.BytesSerialized() != 3 {
		t.Errorf("expected 3 bytes serialized, got %d", c.BytesSerialized())
	}
	if buf[3] != 0xee {
		t.Error("write ran past the reserved bytes")
	}
}

func TestRestartReuse(t *testing.T) {
	c := microcbor.New(make([]byte, 64))
	c.StartMap("", 0)
	_ = microcbor.Add(c, "a", uint8(1))
	if err := c.EndMap(); err != nil {
		t.Fatal(err)
	}

	// A fresh encode pass over the same buffer replaces the old record.
	c.Restart()
	c.StartMap("", 0)
	_ = microcbor.Add(c, "b", uint8(2))
	if err := c.EndMap(); err != nil {
		t.Fatal(err)
	}

	c.Restart()
	if got := microcbor.Get(c, "a", uint8(0)); got != 0 {
		t.Errorf("expected old field gone, got %d", got)
	}
	if got := microcbor.Get(c, "b", uint8(0)); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestReadOnlyEnforcement(t *testing.T) {
	data := make([]byte, 32)
	snapshot := make([]byte, len(data))
	copy(snapshot, data)

	c := microcbor.NewReadOnly(data)
	if err := c.StartMap("", 0); !errors.Is(err, microcbor.ErrReadOnly) {
		t.Errorf("StartMap: expected ErrReadOnly, got %v", err)
	}
	if err := microcbor.Add(c, "i", int32(1)); !errors.Is(err, microcbor.ErrReadOnly) {
		t.Errorf("Add: expected ErrReadOnly, got %v", err)
	}
	if err := c.AddString("s", "x"); !errors.Is(err, microcbor.ErrReadOnly) {
		t.Errorf("AddString: expected ErrReadOnly, got %v", err)
	}
	if err := microcbor.AddSlice(c, "v", []int32{1}, true); !errors.Is(err, microcbor.ErrReadOnly) {
		t.Errorf("AddSlice: expected ErrReadOnly, got %v", err)
	}
	if err := c.EndMap(); !errors.Is(err, microcbor.ErrReadOnly) {
		t.Errorf("EndMap: expected ErrReadOnly, got %v", err)
	}
	if !bytes.Equal(data, snapshot) {
		t.Error("read-only buffer was mutated")
	}
}

func TestInitBufferClearsReadOnly(t *testing.T) {
	c := microcbor.NewReadOnly(nil)
	c.InitBuffer(make([]byte, 16))
	c.StartMap("", 0)
	_ = c.AddString("s", "ok")
	if err := c.EndMap(); err != nil {
		t.Fatal(err)
	}
	c.Restart()
	if got := c.GetString("s", ""); got != "ok" {
		t.Errorf("expected %q, got %q", "ok", got)
	}
}
