// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQueueManagerRegisterForEachUnregister(t *testing.T) {
	m := newQueueManager()
	a := &Producer{}
	b := &Producer{}
	m.register(a)
	m.register(b)

	seen := map[*Producer]bool{}
	m.forEach(func(p *Producer) { seen[p] = true })
	if !seen[a] || !seen[b] {
		t.Fatal("forEach: did not visit every registered producer")
	}

	m.unregister(a)
	seen = map[*Producer]bool{}
	m.forEach(func(p *Producer) { seen[p] = true })
	if seen[a] {
		t.Fatal("forEach after unregister(a): still visited a")
	}
	if !seen[b] {
		t.Fatal("forEach after unregister(a): did not visit b")
	}
}

// TestProducerCloseDrainsAndUnregisters checks §8 scenario 5: a thread
// logs messages then exits; after the next drain pass, the messages
// appear in the sink and the ThreadQueue is removed from the manager.
func TestProducerCloseDrainsAndUnregisters(t *testing.T) {
	logger, err := Open(Options{Path: filepath.Join(t.TempDir(), "app.log")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer logger.Close()

	tmpl := MustTemplate("exit test n={}", TInt64)
	p := logger.Attach()
	for i := range 100 {
		if err := p.Info(tmpl, int64(i)); err != nil {
			t.Fatalf("Info(%d): %v", i, err)
		}
	}
	p.Close()

	if len(logger.manager.producers) != 0 {
		t.Fatalf("manager after Close: got %d producers, want 0", len(logger.manager.producers))
	}

	logger.DrainOnce()
	lines := readLines(t, logger)
	if len(lines) != 100 {
		t.Fatalf("lines after drain: got %d, want 100", len(lines))
	}
}

func readLines(t *testing.T, l *Logger) []string {
	t.Helper()
	if err := l.sink.w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	data, err := os.ReadFile(l.sink.file.Name())
	if err != nil {
		t.Fatalf("read sink file: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
