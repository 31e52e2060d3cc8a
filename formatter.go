// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Formatter is a process-wide singleton identified by a user template
// and an argument-type tuple (§4.2). Its address is the
// [FormatterHandle] written into every [MessageSlot] that uses it. A
// Formatter knows how to encode call-site arguments into a packed byte
// payload and, later and on a different goroutine, decode that payload
// and splice it into the template's "{}" placeholders.
type Formatter struct {
	template string // effective template: "callSite:user template"
	prefix   string // "callSite:", written verbatim before the rendered body
	types    []ArgType
	literals []string // len(literals) == len(types)+1; segments around each "{}"
}

// FormatterHandle is a stable, process-lifetime identifier for a
// [Formatter]. It is simply *Formatter: the pointer is stable for the
// life of the process once interned, and two calls that intern the same
// (template, types) pair observe the same pointer (§8 "Formatter
// identity").
type FormatterHandle = *Formatter

var (
	registryMu sync.Mutex
	registry   = map[string]*Formatter{}
)

// Template interns and returns the [*Formatter] for callTemplate used
// with the given argument types, capturing the immediate caller's
// location as the call-site identifier (§4.2 "Template prefix"). Two
// calls from the same source line with the same template text and
// argument types return the identical *Formatter (§8).
//
// Template is meant to be called once per call site, typically to
// initialize a package-level variable:
//
//	var connected = fastlog.MustTemplate("connected to {}", fastlog.TString)
//
// It returns [ErrPlaceholderMismatch] if the number of "{}" placeholders
// in callTemplate does not equal len(types).
func Template(callTemplate string, types ...ArgType) (*Formatter, error) {
	return templateAt(2, callTemplate, types)
}

// MustTemplate is like [Template] but panics instead of returning an
// error. Placeholder/argument-count mismatches are a programmer error
// (§4.2); a package-level var initializer is not in a position to handle
// an error return gracefully, so most call sites want this form.
func MustTemplate(callTemplate string, types ...ArgType) *Formatter {
	f, err := templateAt(2, callTemplate, types)
	if err != nil {
		panic(err)
	}
	return f
}

func templateAt(skip int, callTemplate string, types []ArgType) (*Formatter, error) {
	literals := splitPlaceholders(callTemplate)
	if len(literals)-1 != len(types) {
		return nil, ErrPlaceholderMismatch
	}

	// Identity is keyed on (template, arg-types) alone, not on call site
	// (§4.2 "Identity"; §8 scenario 6 requires two distinct call sites
	// with the same template and types to share one handle). The
	// call-site prefix is still recorded on the Formatter for the
	// rendered output line, but it comes from whichever call site wins
	// the race to create the entry; every later caller with the same
	// (template, types) reuses that entry, prefix included.
	key := formatterKey(callTemplate, types)

	registryMu.Lock()
	defer registryMu.Unlock()
	if f, ok := registry[key]; ok {
		return f, nil
	}
	site := callSite(skip + 1)
	f := &Formatter{
		template: site + ":" + callTemplate,
		prefix:   site + ":",
		types:    append([]ArgType(nil), types...),
		literals: literals,
	}
	registry[key] = f
	return f, nil
}

// formatterKey renders a unique string key for the registry. Including
// the type tuple lets two textually identical templates with different
// argument types intern separately.
func formatterKey(callTemplate string, types []ArgType) string {
	var b strings.Builder
	b.WriteString(callTemplate)
	b.WriteByte(0)
	for _, t := range types {
		b.WriteByte(byte(t))
	}
	return b.String()
}

// callSite returns an identifier for the function that called into
// fastlog skip frames up the stack, in the form "pkg.Func".
func callSite(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

// splitPlaceholders splits template on "{}" and returns the literal
// segments around each placeholder: len(result) == placeholderCount+1.
func splitPlaceholders(template string) []string {
	return strings.Split(template, "{}")
}

// encodedSize reports the number of payload bytes args would occupy if
// encoded with f, without writing anything. Producer.Log calls this
// before claiming a ring slot, so an oversized argument list is rejected
// without ever publishing a half-written [MessageSlot] (§7: payload
// overflow must be detected at the producer, before enqueue).
func (f *Formatter) encodedSize(args []any) (int, error) {
	if len(args) != len(f.types) {
		return 0, ErrPlaceholderMismatch
	}
	n := 0
	for i, t := range f.types {
		if w := t.size(); w >= 0 {
			n += w
			continue
		}
		s := args[i].(string)
		if idx := indexByte(s, 0); idx >= 0 {
			s = s[:idx]
		}
		n += len(s) + 1
	}
	return n, nil
}

// encode writes level and args into slot, per §3's encoding rules. The
// caller must have already checked [Formatter.encodedSize] against the
// slot's payload capacity; encode assumes it fits and does not itself
// report overflow.
func (f *Formatter) encode(slot *MessageSlot, level Level, args []any) {
	buf := slot.payload[:]
	n := 0
	for i, t := range f.types {
		written, _ := encodeArg(buf[n:], t, args[i])
		n += written
	}
	slot.formatter = f
	slot.level = level
	slot.n = n
}

// format decodes slot's argument stream and writes the rendered body —
// the template with each "{}" replaced by its argument's default textual
// form — to out, per §4.2 "Template splicing".
func (f *Formatter) format(slot *MessageSlot, out *strings.Builder) {
	buf := slot.payload[:slot.n]
	offset := 0
	out.WriteString(f.prefix)
	out.WriteString(f.literals[0])
	for i, t := range f.types {
		text, consumed := decodeArg(buf[offset:], t)
		out.WriteString(text)
		offset += consumed
		out.WriteString(f.literals[i+1])
	}
}

// String implements fmt.Stringer for debugging; it reports the
// formatter's effective template.
func (f *Formatter) String() string {
	return fmt.Sprintf("fastlog.Formatter(%s)", f.template)
}
