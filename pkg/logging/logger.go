package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
)

// current is the level at and below which log output is emitted. It is stored
// atomically so that loggers can be used concurrently with level changes.
var current uint32

func init() {
	// Start with basic execution information enabled, allowing the
	// environment to override the threshold before configuration loading.
	level := LevelInfo
	if name := os.Getenv("CAPSTREAM_LOG_LEVEL"); name != "" {
		if l, ok := NameToLevel(name); ok {
			level = l
		}
	}
	SetLevel(level)
}

// SetLevel sets the level at and below which log output is emitted.
func SetLevel(level Level) {
	atomic.StoreUint32(&current, uint32(level))
}

// CurrentLevel returns the level at and below which log output is emitted.
func CurrentLevel() Level {
	return Level(atomic.LoadUint32(&current))
}

// emits indicates whether or not output at the specified level should be
// emitted under the current level.
func emits(level Level) bool {
	return level <= CurrentLevel()
}

// writer adapts a logging callback to io.Writer by splitting its input stream
// into lines and forwarding each complete line to the callback.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer holds any incomplete line fragment from previous writes.
	buffer []byte
}

// trimCarriageReturn trims any single trailing carriage return from the end of
// a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	// Accumulate the incoming data.
	w.buffer = append(w.buffer, buffer...)

	// Forward every complete line in the accumulated data.
	remaining := w.buffer
	for {
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		remaining = remaining[index+1:]
	}

	// Shift any trailing fragment to the front of the buffer so that the next
	// write appends after it and the buffer doesn't grow without bound.
	if len(remaining) != len(w.buffer) {
		w.buffer = w.buffer[:copy(w.buffer, remaining)]
	}

	// Done.
	return len(buffer), nil
}

// Logger is the main logger type. A nil Logger is valid and discards all
// output, allowing logging calls to be made unconditionally. Loggers write
// through the logger provided by the standard log package, so they respect any
// flags set for it. Loggers are safe for concurrent usage.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
}

// RootLogger is the root logger from which all other loggers derive.
var RootLogger = &Logger{}

// Sublogger creates a new sublogger with the specified name. Sublogger names
// are joined to their parents' with dots to form the logging prefix.
func (l *Logger) Sublogger(name string) *Logger {
	// A nil logger yields nil subloggers.
	if l == nil {
		return nil
	}

	// Compute the new prefix and create the sublogger.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{prefix: prefix}
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(calldepth, line)
}

// Print logs basic execution information with semantics equivalent to
// fmt.Print.
func (l *Logger) Print(v ...any) {
	if l != nil && emits(LevelInfo) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Printf logs basic execution information with semantics equivalent to
// fmt.Printf.
func (l *Logger) Printf(format string, v ...any) {
	if l != nil && emits(LevelInfo) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Println logs basic execution information with semantics equivalent to
// fmt.Println.
func (l *Logger) Println(v ...any) {
	if l != nil && emits(LevelInfo) {
		l.output(3, fmt.Sprintln(v...))
	}
}

// Writer returns an io.Writer that writes lines using Println.
func (l *Logger) Writer() io.Writer {
	// If the logger is nil, then we can just discard input since it won't be
	// logged anyway. This saves us the overhead of scanning lines.
	if l == nil {
		return io.Discard
	}

	// Create the writer.
	return &writer{
		callback: func(s string) {
			l.Println(s)
		},
	}
}

// Debug logs advanced execution information with semantics equivalent to
// fmt.Print, but only if debug logging is enabled (otherwise it's a no-op).
func (l *Logger) Debug(v ...any) {
	if l != nil && emits(LevelDebug) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Debugf logs advanced execution information with semantics equivalent to
// fmt.Printf, but only if debug logging is enabled (otherwise it's a no-op).
func (l *Logger) Debugf(format string, v ...any) {
	if l != nil && emits(LevelDebug) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Debugln logs advanced execution information with semantics equivalent to
// fmt.Println, but only if debug logging is enabled (otherwise it's a no-op).
func (l *Logger) Debugln(v ...any) {
	if l != nil && emits(LevelDebug) {
		l.output(3, fmt.Sprintln(v...))
	}
}

// DebugWriter returns an io.Writer that writes lines using Debugln.
func (l *Logger) DebugWriter() io.Writer {
	// If the logger is nil, then we can just discard input since it won't be
	// logged anyway. This saves us the overhead of scanning lines.
	if l == nil {
		return io.Discard
	}

	// Create the writer.
	return &writer{
		callback: func(s string) {
			l.Debugln(s)
		},
	}
}

// Trace logs low-level execution information with semantics equivalent to
// fmt.Print, but only if trace logging is enabled (otherwise it's a no-op).
func (l *Logger) Trace(v ...any) {
	if l != nil && emits(LevelTrace) {
		l.output(3, fmt.Sprint(v...))
	}
}

// Tracef logs low-level execution information with semantics equivalent to
// fmt.Printf, but only if trace logging is enabled (otherwise it's a no-op).
func (l *Logger) Tracef(format string, v ...any) {
	if l != nil && emits(LevelTrace) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Traceln logs low-level execution information with semantics equivalent to
// fmt.Println, but only if trace logging is enabled (otherwise it's a no-op).
func (l *Logger) Traceln(v ...any) {
	if l != nil && emits(LevelTrace) {
		l.output(3, fmt.Sprintln(v...))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l != nil && emits(LevelWarn) {
		l.output(3, color.YellowString("Warning: %v", err))
	}
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l != nil && emits(LevelError) {
		l.output(3, color.RedString("Error: %v", err))
	}
}
