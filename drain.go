// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// drainInterval is the pacing between passes (§4.4 "Pacing"): batches
// amortize wake-ups without materially increasing tail latency of log
// visibility.
const drainInterval = 100 * time.Millisecond

// timeFormat renders drain-time timestamps as "YYYY-MM-DD HH:MM:SS" in
// local civil time (§4.4 step 2, §6 "Output line format").
const timeFormat = "2006-01-02 15:04:05"

// drainLoop runs the single background consumer for one Logger (§4.4).
type drainLoop struct {
	logger  *Logger
	running atomix.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func newDrainLoop(l *Logger) *drainLoop {
	return &drainLoop{logger: l, done: make(chan struct{})}
}

// start launches the dedicated drain goroutine. It is a no-op if already
// running.
func (d *drainLoop) start() {
	if d.running.LoadAcquire() {
		return
	}
	d.running.StoreRelease(true)
	d.wg.Add(1)
	go d.run()
}

func (d *drainLoop) run() {
	defer d.wg.Done()
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.pass()
		case <-d.done:
			// Final drain pass after keep_running clears (§9 "Final
			// drain on shutdown"), to minimize loss on clean shutdown.
			d.pass()
			return
		}
	}
}

// stop clears keep_running and waits for the drain goroutine to perform
// its final pass and exit (§4.4 "Shutdown").
func (d *drainLoop) stop() {
	if !d.running.LoadAcquire() {
		return
	}
	d.running.StoreRelease(false)
	close(d.done)
	d.wg.Wait()
}

// pass is one full traversal of every registered producer's ring buffer,
// draining it completely (§4.4 "Algorithm (one pass)").
func (d *drainLoop) pass() {
	d.logger.manager.forEach(d.drainProducer)
}

// drainProducer fully drains one producer's ring buffer. It is called
// both from a drain pass and from [Producer.Close]'s inline drain; the
// per-producer mutex keeps those two callers from consuming the same
// SPSC ring concurrently.
func (d *drainLoop) drainProducer(p *Producer) {
	p.drainMu.Lock()
	defer p.drainMu.Unlock()
	for {
		slot, ok := p.ring.dequeue()
		if !ok {
			return
		}
		d.emit(&slot)
	}
}

// emit formats one slot and writes the resulting line to the sink.
func (d *drainLoop) emit(slot *MessageSlot) {
	now := time.Now() // drain-time timestamp (§4.4 step 1), not produce-time
	var line strings.Builder
	line.Grow(len(timeFormat) + len(slot.formatter.template) + slot.n + 16)
	line.WriteByte('[')
	line.WriteString(now.Format(timeFormat))
	line.WriteString("] [")
	line.WriteString(slot.level.String())
	line.WriteString("] ")
	slot.formatter.format(slot, &line)
	line.WriteByte('\n')
	d.logger.sink.writeLine(line.String())
}
