// Package diag is the diagnostic sink used by the hash map to surface details that do not travel
// through control flow, such as which allocation failed or which bucket got promoted.
package diag

import (
	"fmt"
	"go.uber.org/zap"
	"io"
	"os"
)

// Severity - Severity of a reported diagnostic
type Severity int

const (
	Debug Severity = iota
	Msg
	Warn
	Error
)

// String - Returns the lower case name of the severity
func (S Severity) String() string {
	switch S {
	case Debug:
		return "debug"
	case Msg:
		return "msg"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown_severity"
	}
}

// Reporter - Interface for any diagnostic sink
type Reporter interface {
	Report(severity Severity, msg string)
}

// ReporterFunc - Adapter to use an ordinary function as a Reporter
type ReporterFunc func(severity Severity, msg string)

// Report - Calls R(severity, msg)
func (R ReporterFunc) Report(severity Severity, msg string) {
	R(severity, msg)
}

// NopReporter - Discards everything
type NopReporter struct{}

// Report - Does nothing
func (NopReporter) Report(Severity, string) {}

// WriterReporter - Writes "[severity] msg" lines to a writer, dropping anything below MinSeverity
type WriterReporter struct {
	W           io.Writer
	MinSeverity Severity
}

// NewStderrReporter - Returns the fallback reporter used when no reporter is configured.
// Debug diagnostics are dropped.
func NewStderrReporter() *WriterReporter {
	return &WriterReporter{W: os.Stderr, MinSeverity: Msg}
}

// Report - Writes the diagnostic line
func (W *WriterReporter) Report(severity Severity, msg string) {
	if severity < W.MinSeverity {
		return
	}
	_, _ = fmt.Fprintf(W.W, "[%s] %s\n", severity, msg)
}

// ZapReporter - Forwards diagnostics to a zap logger
type ZapReporter struct {
	logger *zap.Logger
}

// NewZapReporter - Returns a pointer to a new ZapReporter, a nil logger gives a no-op logger
func NewZapReporter(logger *zap.Logger) *ZapReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapReporter{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

// Report - Logs msg at the zap level matching severity
func (Z *ZapReporter) Report(severity Severity, msg string) {
	switch severity {
	case Debug:
		Z.logger.Debug(msg)
	case Msg:
		Z.logger.Info(msg)
	case Warn:
		Z.logger.Warn(msg)
	default:
		Z.logger.Error(msg, zap.Stringer("severity", severity))
	}
}
