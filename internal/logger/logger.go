// Package logger writes roster's diagnostics to stderr.
//
// Errors always print. Debug, info and warnings print only in verbose mode
// (--verbose or ROSTER_VERBOSE=1), so background failures that roster
// recovers from stay out of the way unless asked for.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders message severity.
type Level int

// Levels, least severe first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

var state = struct {
	sync.Mutex
	verbose bool
	w       io.Writer
}{w: os.Stderr}

// SetVerbose turns the quieter levels on or off.
func SetVerbose(v bool) {
	state.Lock()
	state.verbose = v
	state.Unlock()
}

// IsVerbose reports whether verbose mode is on.
func IsVerbose() bool {
	state.Lock()
	defer state.Unlock()
	return state.verbose
}

// SetOutput redirects log lines; tests point it at a buffer.
func SetOutput(w io.Writer) {
	state.Lock()
	state.w = w
	state.Unlock()
}

// Log writes one line at l. Lines are written whole under the lock so
// concurrent writers never interleave.
func Log(l Level, format string, args ...any) {
	state.Lock()
	defer state.Unlock()
	if l < LevelError && !state.verbose {
		return
	}
	fmt.Fprintf(state.w, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}

// Debug logs at LevelDebug.
func Debug(format string, args ...any) { Log(LevelDebug, format, args...) }

// Info logs at LevelInfo.
func Info(format string, args ...any) { Log(LevelInfo, format, args...) }

// Warn logs at LevelWarn, for failures roster swallows.
func Warn(format string, args ...any) { Log(LevelWarn, format, args...) }

// Error logs at LevelError. It prints even when verbose mode is off.
func Error(format string, args ...any) { Log(LevelError, format, args...) }
