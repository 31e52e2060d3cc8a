// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"encoding/binary"
	"math"
	"strconv"
)

// ArgType identifies the wire representation of one formatter argument.
// A [*Formatter]'s identity is keyed in part on the sequence of ArgType
// values it was created with (§4.2: "argument-type-tuple").
type ArgType uint8

const (
	TBool ArgType = iota
	TInt8
	TInt16
	TInt32
	TInt64
	TUint8
	TUint16
	TUint32
	TUint64
	TFloat32
	TFloat64
	TString
)

// size returns the fixed encoded width of t, or -1 if t is variable-length.
func (t ArgType) size() int {
	switch t {
	case TBool, TInt8, TUint8:
		return 1
	case TInt16, TUint16:
		return 2
	case TInt32, TUint32, TFloat32:
		return 4
	case TInt64, TUint64, TFloat64:
		return 8
	case TString:
		return -1
	default:
		return -1
	}
}

// encodeArg appends the wire representation of v to buf, per §3's
// argument encoding rules: fixed-width scalars are copied raw at native
// byte order and packed placement; strings are copied as bytes followed
// by one nul terminator with no length prefix. It reports the number of
// bytes written, or false if buf does not have enough remaining capacity
// (§7: payload overflow is a producer-detected error, never a partial
// write).
func encodeArg(buf []byte, t ArgType, v any) (int, bool) {
	n := t.size()
	if n >= 0 && len(buf) < n {
		return 0, false
	}
	switch t {
	case TBool:
		b := byte(0)
		if v.(bool) {
			b = 1
		}
		buf[0] = b
		return 1, true
	case TInt8:
		buf[0] = byte(v.(int8))
		return 1, true
	case TUint8:
		buf[0] = v.(uint8)
		return 1, true
	case TInt16:
		binary.NativeEndian.PutUint16(buf, uint16(v.(int16)))
		return 2, true
	case TUint16:
		binary.NativeEndian.PutUint16(buf, v.(uint16))
		return 2, true
	case TInt32:
		binary.NativeEndian.PutUint32(buf, uint32(v.(int32)))
		return 4, true
	case TUint32:
		binary.NativeEndian.PutUint32(buf, v.(uint32))
		return 4, true
	case TFloat32:
		binary.NativeEndian.PutUint32(buf, math.Float32bits(v.(float32)))
		return 4, true
	case TInt64:
		binary.NativeEndian.PutUint64(buf, uint64(v.(int64)))
		return 8, true
	case TUint64:
		binary.NativeEndian.PutUint64(buf, v.(uint64))
		return 8, true
	case TFloat64:
		binary.NativeEndian.PutUint64(buf, math.Float64bits(v.(float64)))
		return 8, true
	case TString:
		s := v.(string)
		// Interior nul bytes are not supported (§8 boundary behavior):
		// encoding truncates at the first one.
		if i := indexByte(s, 0); i >= 0 {
			s = s[:i]
		}
		need := len(s) + 1
		if len(buf) < need {
			return 0, false
		}
		copy(buf, s)
		buf[len(s)] = 0
		return need, true
	default:
		return 0, false
	}
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// decodeArg reads one value of type t from the front of buf, returning its
// default textual rendering and the number of bytes consumed. The decoder
// never infers the type from the bytes themselves (§3 invariant): it only
// knows how much to read because the formatter's type tuple tells it.
func decodeArg(buf []byte, t ArgType) (string, int) {
	switch t {
	case TBool:
		if buf[0] != 0 {
			return "true", 1
		}
		return "false", 1
	case TInt8:
		return strconv.FormatInt(int64(int8(buf[0])), 10), 1
	case TUint8:
		return strconv.FormatUint(uint64(buf[0]), 10), 1
	case TInt16:
		return strconv.FormatInt(int64(int16(binary.NativeEndian.Uint16(buf))), 10), 2
	case TUint16:
		return strconv.FormatUint(uint64(binary.NativeEndian.Uint16(buf)), 10), 2
	case TInt32:
		return strconv.FormatInt(int64(int32(binary.NativeEndian.Uint32(buf))), 10), 4
	case TUint32:
		return strconv.FormatUint(uint64(binary.NativeEndian.Uint32(buf)), 10), 4
	case TFloat32:
		f := math.Float32frombits(binary.NativeEndian.Uint32(buf))
		return strconv.FormatFloat(float64(f), 'g', -1, 32), 4
	case TInt64:
		return strconv.FormatInt(int64(binary.NativeEndian.Uint64(buf)), 10), 8
	case TUint64:
		return strconv.FormatUint(binary.NativeEndian.Uint64(buf), 10), 8
	case TFloat64:
		f := math.Float64frombits(binary.NativeEndian.Uint64(buf))
		return strconv.FormatFloat(f, 'g', -1, 64), 8
	case TString:
		i := indexByte(string(buf), 0)
		if i < 0 {
			i = len(buf)
			return string(buf), i
		}
		return string(buf[:i]), i + 1
	default:
		return "", len(buf)
	}
}
