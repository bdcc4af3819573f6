// Package report collects the diagnostic output of the reaching-definitions
// core: debug traces of LVN/GVN and warnings about reads that could not be
// resolved to any definition. Nothing here is fatal; the core always
// returns a (possibly empty) result, and callers decide what, if anything,
// to do with the reported text.
package report

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Site is anything that can identify itself in a diagnostic message: a
// node, a block, a def-site. rw.Node and rw.Target both satisfy this.
type Site interface {
	String() string
}

// Logger accumulates warnings and, optionally, a debug trace. The zero
// Logger writes warnings to os.Stderr and discards debug output.
type Logger struct {
	Out     io.Writer
	Verbose bool

	warnings []string
}

// NewLogger returns a Logger writing to w, with tracing enabled iff verbose.
func NewLogger(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Out: w, Verbose: verbose}
}

// Warnf records a warning about site and also writes it to l.Out.
// Per the core's error-handling discipline, a warning never aborts the
// query that produced it: the caller still gets back whatever (possibly
// empty) result it computed.
func (l *Logger) Warnf(site Site, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	full := fmt.Sprintf("%s: %s", site, msg)
	l.warnings = append(l.warnings, full)
	if l.out() != nil {
		fmt.Fprintln(l.out(), "warning:", full)
	}
}

// Warnings returns every warning recorded so far, in emission order.
func (l *Logger) Warnings() []string {
	return l.warnings
}

// Debugf writes a trace line iff the logger is verbose. It is meant for
// the inner loops of LVN and GVN, which are called once per node/PHI and
// would otherwise be far too noisy to leave unconditional.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.Verbose {
		return
	}
	log.New(l.out(), "", 0).Printf(format, args...)
}

func (l *Logger) out() io.Writer {
	if l == nil {
		return nil
	}
	if l.Out == nil {
		return os.Stderr
	}
	return l.Out
}

// Discard is a Logger that writes nothing (warnings are still recorded
// and returned by Warnings); useful when a caller wants the core's return
// values but not its side-channel diagnostics.
var Discard = &Logger{Out: io.Discard}
