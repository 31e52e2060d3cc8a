// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fastlog provides a low-latency asynchronous logging core.
//
// Producer goroutines record structured log events through a per-goroutine
// single-producer/single-consumer ring buffer; one background drain
// goroutine per [Logger] periodically drains every live ring buffer,
// formats each message, and appends it to an output sink. The hot path
// (the producer's call to [Producer.Log] or one of its level-named
// shorthands) never formats, never allocates a string, and never touches
// the sink — it only copies argument bytes into a pre-sized slot.
//
// # Quick start
//
//	logger, err := fastlog.Open(fastlog.Options{Path: "app.log"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Start()
//	defer logger.Close()
//
//	var connected = fastlog.MustTemplate("connected to {} on port {}",
//	    fastlog.TString, fastlog.TInt64)
//
//	p := logger.Attach()
//	defer p.Close()
//	p.Info(connected, "db-primary", int64(5432))
//
// # Ring buffer
//
// Each goroutine that logs gets its own bounded ring buffer, shared with
// exactly one consumer: the logger's drain goroutine. This is the same
// Lamport-style cached-index SPSC algorithm as
// [code.hybscloud.com/lfq.SPSC], specialized to a fixed-size message slot
// instead of a generic element type, so a full ring buffer never needs to
// box or allocate. A producer that finds its ring buffer full spins
// (backed by [code.hybscloud.com/spin]) rather than drop the message or
// time out — backpressure shows up as producer latency, never silent
// loss.
//
// # Formatters
//
// A [Formatter] is created once per call site (typically as a package
// level var, via [Template] or [MustTemplate]) and reused on every call.
// Two formatters are identical — and share one interned [*Formatter]
// value used as the handle — iff their user template text and
// argument-type tuple are equal; the call site is not part of the key.
// The call-site identifier written before each rendered line is the one
// captured by whichever call created the shared entry first.
// Argument bytes are encoded and decoded using the same raw, packed
// layout described in the format registry design: fixed-width scalars
// copied at native byte order, strings copied with a single trailing nul.
//
// # Thread-queue manager and drain loop
//
// [Logger] owns a [*queueManager] tracking every live [Producer]'s ring
// buffer. Call [Logger.Start] to run a background drain goroutine that
// wakes roughly every 100ms, or call [Logger.DrainOnce] synchronously
// (e.g. from a test, or from the one goroutine in a single-threaded
// program). [Producer.Close] drains its ring buffer itself before
// unregistering, so no message is lost to a race between the last enqueue
// and removal from the manager's set, and so Close works even when no
// background drain goroutine is running.
package fastlog
