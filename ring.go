// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// pad is cache-line padding to prevent false sharing between the
// producer-owned and consumer-owned index fields of a [ring].
type pad [64]byte

// ring is the SPSC message-slot ring buffer described in §4.1: a
// fixed-capacity circular buffer of [MessageSlot] values, synchronized
// for exactly one producer goroutine and one consumer goroutine via two
// cache-line-separated atomic indices. It is the same Lamport ring-buffer
// algorithm as [code.hybscloud.com/lfq.SPSC], specialized to MessageSlot
// so a full buffer never requires an allocation to detect.
//
// One slot is always left unused so head==tail is unambiguously "empty";
// capacity C (after rounding up to a power of two) therefore holds C-1
// outstanding messages (§8 boundary: capacity 1024 holds exactly 1023).
type ring struct {
	_          pad
	head       atomix.Uint64 // consumer-owned: next slot to read
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer-owned: next slot to write
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []MessageSlot
	mask       uint64
}

func newRing(capacity, payloadSize int) *ring {
	if capacity < 2 {
		panic("fastlog: ring buffer capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	buffer := make([]MessageSlot, n)
	for i := range buffer {
		buffer[i].payload = make([]byte, payloadSize)
	}
	return &ring{
		buffer: buffer,
		mask:   n - 1,
	}
}

// cap returns the number of slots the ring can hold, including the one
// permanently reserved to disambiguate empty from full.
func (r *ring) cap() int {
	return int(r.mask + 1)
}

// payloadCap returns B, the byte capacity of each slot's argument payload.
func (r *ring) payloadCap() int {
	return len(r.buffer[0].payload)
}

// tryEnqueue publishes init's slot if the ring has room. It returns false
// if the ring is full; the caller (§4.1 Enqueue) is responsible for
// spinning until it returns true.
func (r *ring) tryEnqueue(init func(*MessageSlot)) bool {
	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead >= r.mask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead >= r.mask {
			return false
		}
	}
	init(&r.buffer[tail&r.mask])
	r.tail.StoreRelease(tail + 1)
	return true
}

// enqueue busy-waits while the ring is full (§4.1 "Fullness policy": no
// timeout, no drop — backpressure is producer latency, never silent
// loss).
func (r *ring) enqueue(init func(*MessageSlot)) {
	if r.tryEnqueue(init) {
		return
	}
	sw := spin.Wait{}
	for !r.tryEnqueue(init) {
		sw.Once()
	}
}

// dequeue removes and returns the oldest slot. ok is false iff the ring
// is empty.
func (r *ring) dequeue() (slot MessageSlot, ok bool) {
	head := r.head.LoadRelaxed()
	if head >= r.cachedTail {
		r.cachedTail = r.tail.LoadAcquire()
		if head >= r.cachedTail {
			return MessageSlot{}, false
		}
	}
	src := &r.buffer[head&r.mask]
	// Copy the payload bytes (not just the slice header) out of the
	// slot before releasing it: the slot is reused once the producer
	// wraps all the way back around, and the caller formats this
	// message well after dequeue returns.
	slot.formatter = src.formatter
	slot.level = src.level
	slot.n = src.n
	slot.payload = append([]byte(nil), src.payload[:src.n]...)
	r.head.StoreRelease(head + 1)
	return slot, true
}

// isEmpty reports whether the ring currently holds no messages.
func (r *ring) isEmpty() bool {
	return r.head.LoadAcquire() == r.tail.LoadAcquire()
}

// roundToPow2 rounds n up to the next power of two.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
