// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import "testing"

// TestEncodeDecodeRoundTrip checks §8's "Round-trip encoding" invariant
// for every supported ArgType: decode(encode(v)) equals v's default
// textual rendering.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  ArgType
		v    any
		want string
	}{
		{"bool true", TBool, true, "true"},
		{"bool false", TBool, false, "false"},
		{"int8", TInt8, int8(-12), "-12"},
		{"int8 min", TInt8, int8(-128), "-128"},
		{"uint8", TUint8, uint8(200), "200"},
		{"int16", TInt16, int16(-1000), "-1000"},
		{"uint16", TUint16, uint16(60000), "60000"},
		{"int32", TInt32, int32(-123456), "-123456"},
		{"uint32", TUint32, uint32(4000000000), "4000000000"},
		{"int64", TInt64, int64(-9000000000000000000), "-9000000000000000000"},
		{"uint64", TUint64, uint64(18000000000000000000), "18000000000000000000"},
		{"float32", TFloat32, float32(3.5), "3.5"},
		{"float64", TFloat64, float64(2.718281828), "2.718281828"},
		{"string", TString, "hello", "hello"},
		{"empty string", TString, "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 16)
			n, ok := encodeArg(buf, tc.typ, tc.v)
			if !ok {
				t.Fatalf("encodeArg: got false, want true")
			}
			text, consumed := decodeArg(buf[:n], tc.typ)
			if consumed != n {
				t.Fatalf("decodeArg consumed: got %d, want %d", consumed, n)
			}
			if text != tc.want {
				t.Fatalf("decodeArg: got %q, want %q", text, tc.want)
			}
		})
	}
}

// TestEncodeArgOverflow checks that a buffer too small to hold the value
// reports failure rather than writing a partial value (§7 "payload
// overflow ... never a partial write").
func TestEncodeArgOverflow(t *testing.T) {
	buf := make([]byte, 1)
	if _, ok := encodeArg(buf, TInt64, int64(1)); ok {
		t.Fatal("encodeArg into undersized buffer: got true, want false")
	}
	if _, ok := encodeArg(buf, TString, "too long for one byte"); ok {
		t.Fatal("encodeArg string into undersized buffer: got true, want false")
	}
}

// TestStringInteriorNulTruncates checks the §8 documented boundary
// behavior: a string with an interior nul byte encodes only the bytes
// before it.
func TestStringInteriorNulTruncates(t *testing.T) {
	buf := make([]byte, 32)
	s := "abc\x00def"
	n, ok := encodeArg(buf, TString, s)
	if !ok {
		t.Fatal("encodeArg: got false, want true")
	}
	text, consumed := decodeArg(buf[:n], TString)
	if text != "abc" {
		t.Fatalf("decoded text: got %q, want %q", text, "abc")
	}
	if consumed != n {
		t.Fatalf("consumed: got %d, want %d", consumed, n)
	}
}

func TestArgTypeSize(t *testing.T) {
	fixed := map[ArgType]int{
		TBool: 1, TInt8: 1, TUint8: 1,
		TInt16: 2, TUint16: 2,
		TInt32: 4, TUint32: 4, TFloat32: 4,
		TInt64: 8, TUint64: 8, TFloat64: 8,
	}
	for typ, want := range fixed {
		if got := typ.size(); got != want {
			t.Fatalf("%v.size(): got %d, want %d", typ, got, want)
		}
	}
	if got := TString.size(); got != -1 {
		t.Fatalf("TString.size(): got %d, want -1", got)
	}
}
