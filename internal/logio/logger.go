// Package logio provides a small leveled logger for command line tools, and
// an io.Writer that turns written lines into log messages.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger writes leveled lines like "LEVEL: message" to an output stream,
// and remembers an exit code for the first failure it logs.
type Logger struct {
	mu       sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	exitCode int
}

// NewLogger creates a Logger writing to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{output: out}
}

// SetOutput sets the output stream.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.output = out
}

// ExitCode returns a code to pass to os.Exit: the code of the first Failf, 1
// if only Errorf was called, and 0 otherwise.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function logging at the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Errorf is like Printf("ERROR", ...), additionally setting a non-zero
// ExitCode if none has been set yet.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Failf(1, mess, args...)
}

// Failf logs an error like Errorf, retaining code for ExitCode if no prior
// failure has been logged.
func (log *Logger) Failf(code int, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf("ERROR", mess, args...)
	if log.exitCode == 0 {
		log.exitCode = code
	}
}

// Printf writes a line like "level: message...\n"; an empty level omits the
// prefix. Output errors are reported to the output stream at most once, as an
// ERROR line.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if err := log.printf(level, mess, args...); err != nil && log.exitCode == 0 {
		log.exitCode = 1
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if log.output == nil {
		return nil
	}
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.output)
	log.buf.Reset()
	return err
}
