// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

// defaultPayloadCap is B from §3: the default capacity in bytes of a
// MessageSlot's argument payload. A Logger may be built with a different
// size via [Options.PayloadSize], but every slot in a given Logger's ring
// buffers uses the same size (§9 "Message-slot size" is a tunable,
// uniform per ring buffer).
const defaultPayloadCap = 1024

// MessageSlot is the fixed-size unit of transfer through a ring buffer: a
// formatter handle plus an opaque, formatter-specific byte payload. The
// payload slice is allocated once, at the configured capacity, when the
// owning ring buffer is created, and is never resized — so a "fixed-size
// slot" in Go terms means a slice that is written in place and never
// grown, not a literal array whose length varies per Logger.
//
// §3 specifies the level as occupying the first byte-range of payload;
// here it is carried as its own struct field instead of packed into
// payload[0]. This is equivalent — the level is still written before the
// argument stream and is still opaque to everything except the Logger
// and the drainer — and it avoids an off-by-one on every encode/decode.
// The drainer never interprets the argument bytes except through the
// recorded formatter (§3 invariant).
type MessageSlot struct {
	formatter *Formatter
	level     Level
	payload   []byte // encoded argument stream, len == cap == the ring's payload size
	n         int    // bytes of payload actually used
}
