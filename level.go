// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastlog

import "strings"

// Level is an ordered log severity. Producers enqueue a message only when
// its Level is greater than or equal to the Logger's current threshold.
type Level uint8

const (
	// Debug is the lowest severity: verbose, developer-facing detail.
	Debug Level = iota
	// Info records routine, expected events.
	Info
	// Error records a failure that the process can still recover from.
	Error
	// Fatal records a failure severe enough to end normal operation.
	// fastlog never calls os.Exit on the caller's behalf (§7: the library
	// never aborts the host process); Fatal is a severity label only.
	Fatal
)

// String returns the level's textual name: "DEBUG", "INFO", "ERROR", or
// "FATAL".
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "FATAL"
	}
}

// ParseLevel maps a level name back to a Level. Unknown names map to
// Fatal, the highest severity, so a message tagged with an unrecognized
// level name is never filtered out by any threshold.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return Debug
	case "INFO":
		return Info
	case "ERROR":
		return Error
	case "FATAL":
		return Fatal
	default:
		return Fatal
	}
}
