// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"sync"
)

// Producer is a ThreadQueue (§3): one goroutine's ring buffer, registered
// with its Logger's queue manager for the drain loop to find. Go has no
// thread-local destructor to hook a producer's exit, so attachment is
// explicit (§9 "Thread-local queue lifetime", option: "require explicit
// detach_current_thread() calls"): call [Logger.Attach] once per
// goroutine that will log, and defer [Producer.Close] before that
// goroutine returns.
//
// A Producer must be used by exactly one goroutine at a time; sharing one
// across goroutines violates the ring buffer's SPSC contract (§4.1).
type Producer struct {
	logger  *Logger
	ring    *ring
	drainMu sync.Mutex // serializes Close's inline drain against a concurrent background pass
}

// Log encodes args with handle's formatter and enqueues a message at the
// given level, unless level is below the Logger's current threshold (§4.5
// "log"). It busy-spins if the producer's ring buffer is full; it never
// drops or times out (§4.1, §7).
//
// Log returns [ErrPayloadOverflow] or [ErrPlaceholderMismatch] if the
// arguments cannot be encoded; per §7 these are programmer errors and the
// message is dropped rather than enqueued. The check happens before any
// ring slot is claimed, so a rejected message never reaches the drainer
// half-written.
func (p *Producer) Log(handle *Formatter, level Level, args ...any) error {
	if level < p.logger.Threshold() {
		return nil
	}
	size, err := handle.encodedSize(args)
	if err != nil {
		p.logger.reportProducerError(err)
		return err
	}
	if size > p.ring.payloadCap() {
		p.logger.reportProducerError(ErrPayloadOverflow)
		return ErrPayloadOverflow
	}
	p.ring.enqueue(func(slot *MessageSlot) {
		handle.encode(slot, level, args)
	})
	return nil
}

// Debug logs at [Debug] severity.
func (p *Producer) Debug(handle *Formatter, args ...any) error { return p.Log(handle, Debug, args...) }

// Info logs at [Info] severity.
func (p *Producer) Info(handle *Formatter, args ...any) error { return p.Log(handle, Info, args...) }

// Error logs at [Error] severity.
func (p *Producer) Error(handle *Formatter, args ...any) error { return p.Log(handle, Error, args...) }

// Fatal logs at [Fatal] severity. It does not terminate the process
// (§7): fastlog never aborts its host.
func (p *Producer) Fatal(handle *Formatter, args ...any) error { return p.Log(handle, Fatal, args...) }

// Close unregisters the producer from its Logger (§4.3 "unregister").
// Per §9's resolution of the "unregister-wait hack" open question, Close
// drains the departing ring itself (option (b)) instead of sleeping a
// fixed interval or spinning on emptiness: a caller that never started a
// background drain loop would otherwise block forever. The drain runs
// under the same per-producer mutex a concurrently running background
// pass uses, so the ring never has two simultaneous consumers. Call it
// exactly once, after the owning goroutine is done logging and before it
// exits.
func (p *Producer) Close() {
	p.logger.drain.drainProducer(p)
	p.logger.manager.unregister(p)
}

// queueManager tracks the set of live Producers for one Logger (§4.3).
// The mutex guards only set membership; it is never held while a message
// is formatted or written (§4.3 "Discipline").
type queueManager struct {
	mu        sync.Mutex
	producers map[*Producer]struct{}
}

func newQueueManager() *queueManager {
	return &queueManager{producers: make(map[*Producer]struct{})}
}

func (m *queueManager) register(p *Producer) {
	m.mu.Lock()
	m.producers[p] = struct{}{}
	m.mu.Unlock()
}

func (m *queueManager) unregister(p *Producer) {
	m.mu.Lock()
	delete(m.producers, p)
	m.mu.Unlock()
}

// forEach calls visit for every currently registered Producer. The
// snapshot is taken under the mutex and then visited outside it, so a
// concurrent register/unregister never blocks on drain work and a
// concurrent drain pass never blocks producer attach/detach for longer
// than a map copy.
func (m *queueManager) forEach(visit func(*Producer)) {
	m.mu.Lock()
	snapshot := make([]*Producer, 0, len(m.producers))
	for p := range m.producers {
		snapshot = append(snapshot, p)
	}
	m.mu.Unlock()

	for _, p := range snapshot {
		visit(p)
	}
}
