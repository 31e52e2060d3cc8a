// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrPayloadOverflow is returned by [Producer.Log] when the encoded
// argument bytes for a call would exceed the Logger's configured payload
// capacity. Per §7 this is a programmer error, not a transient condition:
// the caller should shrink its arguments or enlarge the Logger's payload
// size, not retry. The message is dropped; it is never partially written.
var ErrPayloadOverflow = errors.New("fastlog: encoded arguments exceed payload capacity")

// ErrPlaceholderMismatch is returned by [Template] and panicked by
// [MustTemplate] when a format template's placeholder count does not
// equal the number of argument types supplied. §4.2 treats this as a
// programmer error to be caught at the producer rather than rendered
// incorrectly at drain time.
var ErrPlaceholderMismatch = errors.New("fastlog: placeholder count does not match argument type count")

// IsWouldBlock reports whether err indicates a condition where the
// caller would need to wait rather than having hit a real failure. It
// delegates to [iox.IsWouldBlock]; the ring buffer itself never returns
// this to callers — [Producer.Log] spins internally instead (§4.1).
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsNonFailure reports whether err represents a condition fastlog
// considers survivable: nil, or one of the semantic/advisory errors
// classified by [iox.IsNonFailure]. Sink write failures do not pass
// through this classifier: the sink logs the first one via the standard
// library's log package, drops the line, and the drain loop proceeds to
// the next message (§7: "continue ... must not crash the host").
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
