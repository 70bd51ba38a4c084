// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

/*
Package microcbor encodes and decodes a subset of RFC 8949 Concise Binary
Object Representation (CBOR) directly in a caller-supplied, fixed-size
buffer, with no heap allocation. It targets resource-constrained and
latency-sensitive code where a record is built incrementally, transmitted,
and later queried field-by-field without deserializing into an object
graph.

Not supported:

  - Indefinite-length arrays, maps, byte strings, or text strings
  - Simple values other than bool, null, float32, and float64
  - Half-precision floats
  - The full tag registry (only the typed-array tags and two application
    extension tags are produced or resolved)
  - Schema validation of any kind

# Encoding

A read-write Codec is constructed over a mutable buffer. The caller opens
a map, adds typed key/value pairs (possibly opening nested maps up to
[MaxNesting] deep), and closes the map, which backpatches the pair count
into the header written at open time.

	buf := make([]byte, 256)
	c := microcbor.New(buf)
	c.StartMap("", 0)
	microcbor.Add(c, "i32", int32(-32000000))
	microcbor.AddSlice(c, "pts", []int32{1, 2, 3, 4}, true)
	c.StartMap("inner", 0)
	c.AddString("s", "hello")
	c.EndMap()
	c.EndMap()
	out := c.Buffer()[:c.BytesSerialized()]

Writes never fail loudly. The first write that does not fit latches an
error, retrievable with [Codec.Err], and subsequent writes become no-ops —
but [Codec.BytesNeeded] keeps accumulating the exact size the sequence
requires. Encoding into a nil buffer is therefore a size probe: run the
sequence once, allocate BytesNeeded bytes, and run it again.

Integer values encode at the static width of their Go type (int32 always
takes a 5-byte header) so identical call sequences produce identically
laid-out output; [AddMinimal] picks the width from the value's magnitude
instead.

# Decoding

Lookups walk the map's key/value pairs linearly and pay nothing for fields
the caller does not request. Getters never fail visibly: an absent key, a
type mismatch, or a malformed buffer yields the caller's default. New
fields added by a future producer are ignored by older consumers and
missing fields resolve to defaults, so schema evolution needs no version
negotiation.

	c.Restart()
	i := microcbor.Get(c, "i32", int32(0))
	pts := microcbor.GetSlice(c, "pts", []int32(nil))
	s := c.GetMap("inner").GetString("s", "")

[GetSlice], [Codec.GetBytes], and [Codec.GetString] return views that
alias the buffer rather than copies; they are valid only as long as the
buffer itself. [Codec.GetMap] returns a read-only Codec scoped to the
nested map's bytes, again without copying.

Typed arrays are stored as a tagged byte string holding the raw element
bytes in native byte order. With alignment enabled (the default) the
writer pads the key string with trailing zero bytes so the payload lands
on a natural alignment boundary; key lookup compares names up to the
first zero byte, so padded keys still match.

A Codec carries mutable cursor state and is not safe for concurrent use.
Any number of read-only Codecs may share the same bytes.
*/
package microcbor
