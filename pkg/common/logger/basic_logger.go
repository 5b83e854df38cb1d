package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fundsplit/pkg/common/iface"
)

// BasicLogger prints plain lines: Title and Info to out, Warn and Error to errOut.
type BasicLogger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

func NewLogger(verbose bool) *BasicLogger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr, verbose)
}

func NewLoggerWithWriters(out, errOut io.Writer, verbose bool) *BasicLogger {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &BasicLogger{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
	}
}

func writeLines(w io.Writer, prefix, msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	lines := strings.Split(strings.TrimSuffix(formatted, "\n"), "\n")
	for _, line := range lines {
		fmt.Fprintf(w, "%s%s\n", prefix, line)
	}
}

func (l *BasicLogger) Title(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(l.out, "\n%s\n", formatted)
}

func (l *BasicLogger) Info(msg string, args ...any) {
	writeLines(l.out, "", msg, args...)
}

func (l *BasicLogger) Warn(msg string, args ...any) {
	writeLines(l.errOut, "", msg, args...)
}

func (l *BasicLogger) Error(msg string, args ...any) {
	writeLines(l.errOut, "", msg, args...)
}

func (l *BasicLogger) Debug(msg string, args ...any) {
	// skip debug when !verbose
	if !l.verbose {
		return
	}
	writeLines(l.errOut, "Debug: ", msg, args...)
}

// Actor-based methods
func (l *BasicLogger) TitleWithActor(actor iface.Actor, msg string, args ...any) {
	l.Title(msg, args...)
}

func (l *BasicLogger) InfoWithActor(actor iface.Actor, msg string, args ...any) {
	l.Info(msg, args...)
}

func (l *BasicLogger) WarnWithActor(actor iface.Actor, msg string, args ...any) {
	l.Warn(msg, args...)
}

func (l *BasicLogger) ErrorWithActor(actor iface.Actor, msg string, args ...any) {
	l.Error(msg, args...)
}

func (l *BasicLogger) DebugWithActor(actor iface.Actor, msg string, args ...any) {
	l.Debug(msg, args...)
}
