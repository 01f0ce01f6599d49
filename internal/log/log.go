// Package log provides a minimal level-gated logger for the engine.
// It intentionally mirrors the style of a package Printf logger rather than
// a structured logging framework: the engine's hot paths never log, and the
// only call sites (per-epoch Debug lines in Classifier and Regressor
// training) need just level filtering and formatting.
package log

import (
	"fmt"
	"os"
)

// Log levels, ordered from least to most verbose.
const (
	Error = iota
	Warn
	Info
	Debug
)

// Level is the package-wide verbosity threshold. Messages at or below Level
// are written; defaults to Error so a library consumer stays quiet unless it
// opts in.
var Level = Error

func levelToString(level int) string {
	switch level {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Printf logs a message at the given level if Level permits it.
func Printf(level int, format string, args ...interface{}) {
	if level <= Level {
		fmt.Fprintf(os.Stderr, "[%s]: %s\n", levelToString(level), fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	Printf(Debug, format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	Printf(Warn, format, args...)
}
