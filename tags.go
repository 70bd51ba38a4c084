// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package microcbor

// Tag numbers attached to typed contiguous arrays so that element types
// survive the trip through a byte string. The numeric tags follow the RFC
// 8746 typed-array registrations; 1001/1002 are application extension tags
// reserved for time and duration values.
const (
	TagHomogeneousArray uint16 = 41
	TagUint8            uint16 = 64
	TagUint16           uint16 = 69
	TagUint32           uint16 = 70
	TagUint64           uint16 = 71
	TagInt8             uint16 = 72
	TagInt16            uint16 = 77
	TagInt32            uint16 = 78
	TagInt64            uint16 = 79
	TagFloat32          uint16 = 85
	TagFloat64          uint16 = 86
	TagTime             uint16 = 1001
	TagDuration         uint16 = 1002

	// TagNone is the resolved tag reported for a field that carried no tag
	// header.
	TagNone uint16 = 65535
)

// Element is the set of numeric types that can be stored as a typed
// contiguous array and extracted again without copying.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Integer is the set of integer types accepted by Add, AddMinimal, and
// Get.
type Integer interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint
}

// tagOf maps an element type to its wire tag.
func tagOf[T Element]() uint16 {
	var v T
	switch any(v).(type) {
	case int8:
		return TagInt8
	case int16:
		return TagInt16
	case int32:
		return TagInt32
	case int64:
		return TagInt64
	case uint8:
		return TagUint8
	case uint16:
		return TagUint16
	case uint32:
		return TagUint32
	case uint64:
		return TagUint64
	case float32:
		return TagFloat32
	case float64:
		return TagFloat64
	}
	panic("unreachable")
}
