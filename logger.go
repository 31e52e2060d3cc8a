// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"sync/atomic"
)

// defaultRingCapacity is the recommended ring buffer size from §3 (1024
// slots, rounded to a power of two; 1023 messages outstanding per
// producer at once).
const defaultRingCapacity = 1024

// Logger owns one output sink and one queue manager (§3 "Logger"). Each
// Logger is independent: multiple Loggers may coexist, each with its own
// manager, so a given [Producer] belongs to exactly one Logger.
type Logger struct {
	sink         *sink
	manager      *queueManager
	drain        *drainLoop
	threshold    atomic.Int32 // holds a Level
	ringCapacity int
	payloadSize  int
}

// Open creates a Logger writing to opts.Path, applying opts (see
// [Options]). The sink file is opened in append/create mode (§6); it is
// never truncated.
func Open(opts Options) (*Logger, error) {
	opts.setDefaults()

	s, err := openSink(opts.Path)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		sink:         s,
		manager:      newQueueManager(),
		ringCapacity: opts.RingCapacity,
		payloadSize:  opts.PayloadSize,
	}
	l.threshold.Store(int32(opts.Level))
	l.drain = newDrainLoop(l)
	return l, nil
}

// Attach creates and registers a new [Producer] bound to the calling
// goroutine (§3 "Created on the thread's first logging call"). Go has no
// implicit per-goroutine storage, so the caller must hold onto the
// returned Producer and call [Producer.Close] before the goroutine that
// attached it returns.
func (l *Logger) Attach() *Producer {
	p := &Producer{logger: l, ring: newRing(l.ringCapacity, l.payloadSize)}
	l.manager.register(p)
	return p
}

// SetLevel stores the Logger's filtering threshold (§4.5 "set_level").
// Ordering with concurrent Log calls is best-effort: a message in flight
// when the threshold changes may be filtered by either the old or the
// new value (§8 "modulo a benign race with set_level").
func (l *Logger) SetLevel(level Level) {
	l.threshold.Store(int32(level))
}

// Threshold returns the Logger's current filtering threshold.
func (l *Logger) Threshold() Level {
	return Level(l.threshold.Load())
}

// Start launches the background drain goroutine (§4.4, §5 "the drainer
// is ... a dedicated thread"). Use [Logger.DrainOnce] instead for
// synchronous/single-threaded operation. Start is idempotent.
func (l *Logger) Start() {
	l.drain.start()
}

// DrainOnce runs exactly one drain pass on the calling goroutine (§4.5
// "drain_once"). It is intended for synchronous-mode Loggers and tests;
// do not call it concurrently with a running background drain goroutine
// started by [Logger.Start].
func (l *Logger) DrainOnce() {
	l.drain.pass()
}

// Close stops the background drain goroutine (performing one final pass
// first, per §9's recommendation) and flushes and closes the sink (§6
// "On destruction the sink is flushed and closed"). If [Logger.Start]
// was never called, Close runs no drain pass: messages still queued in
// producers that were not closed are not written.
func (l *Logger) Close() error {
	l.drain.stop()
	return l.sink.close()
}

// reportProducerError routes a producer-side encoding error to the
// appropriate one-shot diagnostic (§7: "optionally emit a one-shot
// diagnostic").
func (l *Logger) reportProducerError(err error) {
	switch err {
	case ErrPayloadOverflow, ErrPlaceholderMismatch:
		l.sink.reportOverflow(err)
	}
}
