// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"fmt"
	"strconv"
	"strings"
)

// Options configures a [Logger] (§6 "Sink", §3 "Logger"). The zero value
// is not directly usable — Path is required — but every other field has
// a sensible default filled in by [Open] via setDefaults.
type Options struct {
	// Path is the append-only output file. It is opened in append/create
	// mode; an existing file is never truncated (§6).
	Path string

	// Level is the initial filtering threshold (§3 "LogLevel"). The zero
	// value is [Debug], the least restrictive threshold, so an
	// Options{Path: ...} literal with Level left unset filters out
	// nothing rather than silently dropping messages. [Builder] sets it
	// explicitly to [Info] instead, since fluent construction has no
	// zero-value ambiguity to worry about.
	Level Level

	// RingCapacity is the number of slots in each producer's ring
	// buffer, rounded up to a power of two (§3 "RingBuffer"). Defaults
	// to 1024.
	RingCapacity int

	// PayloadSize is B from §3: the byte capacity of each slot's
	// argument payload. Defaults to 1024.
	PayloadSize int
}

func (o *Options) setDefaults() {
	if o.RingCapacity <= 0 {
		o.RingCapacity = defaultRingCapacity
	}
	if o.PayloadSize <= 0 {
		o.PayloadSize = defaultPayloadCap
	}
}

// Builder provides fluent construction of a [Logger], mirroring
// code.hybscloud.com/lfq's Options/Builder pair: accumulate settings
// with chained With... calls, then call [Builder.Build].
type Builder struct {
	opts Options
	err  error
}

// New starts a Builder for a Logger that will append to path.
func New(path string) *Builder {
	return &Builder{opts: Options{Path: path, Level: Info}}
}

// WithLevel sets the initial filtering threshold.
func (b *Builder) WithLevel(level Level) *Builder {
	b.opts.Level = level
	return b
}

// WithRingCapacity sets the per-producer ring buffer capacity directly,
// in slots.
func (b *Builder) WithRingCapacity(slots int) *Builder {
	b.opts.RingCapacity = slots
	return b
}

// WithRingCapacitySize sets the ring buffer capacity from a
// human-readable size string such as "64KB" (interpreted as bytes of
// approximate MessageSlot storage, then converted to a slot count), via
// [ParseSize].
func (b *Builder) WithRingCapacitySize(s string) *Builder {
	n, err := ParseSize(s)
	if err != nil {
		b.err = err
		return b
	}
	slotSize := int64(b.effectivePayloadSize() + 32) // + level, formatter pointer, bookkeeping
	if slotSize <= 0 {
		slotSize = defaultPayloadCap
	}
	b.opts.RingCapacity = int(n / slotSize)
	return b
}

// WithPayloadSize sets B, the byte capacity of each slot's argument
// payload, directly.
func (b *Builder) WithPayloadSize(bytes int) *Builder {
	b.opts.PayloadSize = bytes
	return b
}

// WithPayloadSizeString sets B from a human-readable size string such as
// "1KB", via [ParseSize].
func (b *Builder) WithPayloadSizeString(s string) *Builder {
	n, err := ParseSize(s)
	if err != nil {
		b.err = err
		return b
	}
	b.opts.PayloadSize = int(n)
	return b
}

func (b *Builder) effectivePayloadSize() int {
	if b.opts.PayloadSize > 0 {
		return b.opts.PayloadSize
	}
	return defaultPayloadCap
}

// Build opens the Logger. It returns the error recorded by the most
// recent failing WithRingCapacitySize or WithPayloadSizeString call, if
// any, or the error from opening the sink file.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Open(b.opts)
}

// ParseSize converts human-readable byte-size strings such as "64KB",
// "1MB", or a plain integer, into a byte count. It supports
// case-insensitive single- and double-letter binary-prefix suffixes: K
// or KB (1024), M or MB (1024^2), G or GB (1024^3), T or TB (1024^4).
func ParseSize(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("fastlog: empty size string")
	}
	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return val, nil
	}

	upper := strings.ToUpper(s)
	var multiplier int64
	var numStr string
	switch {
	case strings.HasSuffix(upper, "KB"):
		multiplier, numStr = 1024, upper[:len(upper)-2]
	case strings.HasSuffix(upper, "MB"):
		multiplier, numStr = 1024*1024, upper[:len(upper)-2]
	case strings.HasSuffix(upper, "GB"):
		multiplier, numStr = 1024*1024*1024, upper[:len(upper)-2]
	case strings.HasSuffix(upper, "TB"):
		multiplier, numStr = 1024*1024*1024*1024, upper[:len(upper)-2]
	case strings.HasSuffix(upper, "K"):
		multiplier, numStr = 1024, upper[:len(upper)-1]
	case strings.HasSuffix(upper, "M"):
		multiplier, numStr = 1024*1024, upper[:len(upper)-1]
	case strings.HasSuffix(upper, "G"):
		multiplier, numStr = 1024*1024*1024, upper[:len(upper)-1]
	case strings.HasSuffix(upper, "T"):
		multiplier, numStr = 1024*1024*1024*1024, upper[:len(upper)-1]
	default:
		return 0, fmt.Errorf("fastlog: unknown size suffix in %q (supported: KB/K, MB/M, GB/G, TB/T)", s)
	}

	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fastlog: invalid size number in %q: %w", s, err)
	}
	result := val * multiplier
	if result < 0 {
		return 0, fmt.Errorf("fastlog: size %q too large", s)
	}
	return result, nil
}
