/*
File    : gomixscript/logger/logger.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package logger implements a small leveled logger with three output sinks
(stdout, a file, or an in-memory buffer) and two levels: DEBUG, for the
VM's opcode-by-opcode trace, and ERROR, for diagnostics surfaced to the
user. Stdout output is colorized with fatih/color the way the REPL
colorizes its own output.
*/
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level distinguishes the DEBUG trace stream from the ERROR diagnostic
// stream. Each Logger carries exactly one level for its lifetime.
type Level int

const (
	LevelDebug Level = iota
	LevelError
)

// Sink selects where a Logger's output goes.
type Sink int

const (
	SinkStdout Sink = iota
	SinkFile
	SinkString
)

var (
	debugColor = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed)
)

// Logger writes leveled messages to one configured sink.
type Logger struct {
	level Level
	sink  Sink
	out   io.Writer
	buf   *bytes.Buffer
	file  *os.File
}

// New constructs a Logger at level, writing to stdout until SetOutput
// reconfigures it.
func New(level Level) *Logger {
	return &Logger{level: level, sink: SinkStdout, out: os.Stdout}
}

// SetOutput switches the sink. filename is required (and must be
// non-empty) when sink is SinkFile; it is ignored otherwise.
func (l *Logger) SetOutput(sink Sink, filename string) error {
	switch sink {
	case SinkStdout:
		l.sink = SinkStdout
		l.out = os.Stdout
		l.buf = nil
	case SinkFile:
		if filename == "" {
			return fmt.Errorf("logger: a filename is required for SinkFile")
		}
		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		l.sink = SinkFile
		l.file = f
		l.out = f
		l.buf = nil
	case SinkString:
		l.buf = &bytes.Buffer{}
		l.sink = SinkString
		l.out = l.buf
	}
	return nil
}

// Level reports the Logger's configured level.
func (l *Logger) Level() Level { return l.level }

// Log writes msg followed by a newline, colorized by level when the sink
// is stdout.
func (l *Logger) Log(msg string) {
	if l.sink == SinkStdout {
		c := debugColor
		if l.level == LevelError {
			c = errorColor
		}
		c.Fprintf(l.out, "%s\n", msg)
		return
	}
	fmt.Fprintf(l.out, "%s\n", msg)
}

// Write implements io.Writer so a Logger can be used directly as a debug
// trace sink (e.g. by the VM's opcode-by-opcode printer), which writes
// fragments rather than whole lines.
func (l *Logger) Write(p []byte) (int, error) {
	if l.sink == SinkStdout {
		c := debugColor
		if l.level == LevelError {
			c = errorColor
		}
		return c.Fprint(l.out, string(p))
	}
	return l.out.Write(p)
}

// String returns everything written so far. Valid only when the sink is
// SinkString.
func (l *Logger) String() string {
	if l.buf == nil {
		return ""
	}
	return l.buf.String()
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
