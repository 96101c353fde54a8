package log

import (
	"io"
	"os"
)

// Level specifies the minimum severity a logger emits.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// Logger is the logging facade injected through the actor system. Fatal and
// Fatalf terminate the process after writing the record.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)

	// With returns a child logger with the given key/value pairs attached
	// to every record.
	With(args ...any) Logger
}

var (
	// DefaultLogger emits InfoLevel and above to stderr.
	DefaultLogger Logger = New(InfoLevel, os.Stderr)

	// DiscardLogger drops every record. Fatal still terminates the process.
	DiscardLogger Logger = New(FatalLevel, io.Discard)
)
