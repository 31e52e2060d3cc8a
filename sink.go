// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"bufio"
	"log"
	"os"
	"sync"
)

// sink is the drain loop's only collaborator outside the logging core
// itself (§1 "out of scope: ... the only sink is a byte stream provided
// by the host"). It owns the append-only output file and flushes after
// every line (§4.4 step 5, §9 "Flush-per-line").
type sink struct {
	file *os.File
	w    *bufio.Writer
	mu   sync.Mutex // serializes writeLine: Producer.Close drains on its own goroutine, concurrently with a background pass

	overflowOnce sync.Once
	mismatchOnce sync.Once
	writeOnce    sync.Once
}

// openSink opens path in append/create mode (§6 "Sink"). Truncation is
// never performed.
func openSink(path string) (*sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &sink{file: f, w: bufio.NewWriter(f)}, nil
}

// writeLine appends line (which must already end in '\n') and flushes
// immediately. A write failure is reported once via the standard log
// package and otherwise swallowed (§7 "Sink write failure ... reference
// behavior is to continue; best-effort logging must not crash the
// host").
func (s *sink) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.WriteString(line); err != nil {
		s.reportWriteFailure(err)
		return
	}
	if err := s.w.Flush(); err != nil {
		s.reportWriteFailure(err)
	}
}

func (s *sink) reportWriteFailure(err error) {
	s.writeOnce.Do(func() {
		log.Printf("fastlog: sink write failed, continuing best-effort: %v", err)
	})
}

func (s *sink) reportOverflow(err error) {
	switch err {
	case ErrPlaceholderMismatch:
		s.mismatchOnce.Do(func() { log.Printf("fastlog: %v", err) })
	default:
		s.overflowOnce.Do(func() { log.Printf("fastlog: %v", err) })
	}
}

// close flushes and closes the underlying file (§6 "On destruction the
// sink is flushed and closed").
func (s *sink) close() error {
	_ = s.w.Flush()
	return s.file.Close()
}
