// SPDX-FileCopyrightText: (C) 2026 Entazza LLC
// SPDX-License-Identifier: MIT

package diag_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/entazza/microcbor/diag"
)

func TestFromCBOR(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string // hex
		want  string
	}{
		{name: "uint", input: "1903e7", want: "999"},
		{name: "negative", input: "3903e8", want: "-1001"},
		{name: "text", input: "6568656c6c6f", want: `"hello"`},
		{name: "bytes", input: "4412345678", want: "h'12345678'"},
		{name: "true", input: "f5", want: "true"},
		{name: "false", input: "f4", want: "false"},
		{name: "null", input: "f6", want: "null"},
		{name: "float32", input: "fa3fc00000", want: "1.5"},
		{name: "float64", input: "fbc004000000000000", want: "-2.5"},
		{name: "array", input: "83010203", want: "[1, 2, 3]"},
		{name: "empty map", input: "a0", want: "{}"},
		{
			name:  "map",
			input: "a2616101616282f4f5",
			want:  `{"a": 1, "b": [false, true]}`,
		},
		{
			name:  "typed array tag",
			input: "d84e480100000002000000",
			want:  "78(h'0100000002000000')",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			b, err := hex.DecodeString(test.input)
			if err != nil {
				t.Fatal(err)
			}
			got, err := diag.FromCBOR(b)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("got: %s want: %s", got, test.want)
			}
		})
	}
}

func TestFromCBORErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string // hex
		want  error
	}{
		{name: "empty", input: "", want: diag.ErrInvalidInput},
		{name: "truncated header", input: "19ff", want: diag.ErrInvalidInput},
		{name: "truncated payload", input: "4401", want: diag.ErrInvalidInput},
		{name: "reserved width", input: "7f", want: diag.ErrInvalidInput},
		{name: "trailing data", input: "0102", want: diag.ErrTrailingData},
		{name: "unsupported simple", input: "f8ff", want: diag.ErrInvalidInput},
	} {
		t.Run(test.name, func(t *testing.T) {
			b, err := hex.DecodeString(test.input)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := diag.FromCBOR(b); !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}
}
