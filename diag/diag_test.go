package diag

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	t.Run("names every severity", func(t *testing.T) {
		assert.Equal(t, "debug", Debug.String(), "debug")
		assert.Equal(t, "msg", Msg.String(), "msg")
		assert.Equal(t, "warn", Warn.String(), "warn")
		assert.Equal(t, "error", Error.String(), "error")
		assert.Equal(t, "unknown_severity", Severity(42).String(), "unknown")
	})
}

func TestWriterReporter_Report(t *testing.T) {
	t.Run("writes lines at or above min severity", func(t *testing.T) {
		// Prepare
		var buf bytes.Buffer
		r := &WriterReporter{W: &buf, MinSeverity: Msg}

		// Execute
		r.Report(Debug, "hidden")
		r.Report(Warn, "bucket 3 promoted")
		r.Report(Error, "allocation failed")

		// Check
		assert.Equal(t, "[warn] bucket 3 promoted\n[error] allocation failed\n", buf.String(), "formatted lines")
	})
}

func TestReporterFunc_Report(t *testing.T) {
	t.Run("calls the function", func(t *testing.T) {
		// Prepare
		var got []string
		r := ReporterFunc(func(severity Severity, msg string) { got = append(got, severity.String()+":"+msg) })

		// Execute
		r.Report(Msg, "hello")
		NopReporter{}.Report(Error, "dropped")

		// Check
		assert.Equal(t, []string{"msg:hello"}, got, "function called once")
	})
}

func TestZapReporter_Report(t *testing.T) {
	t.Run("maps severities to zap levels", func(t *testing.T) {
		// Prepare
		core, logs := observer.New(zapcore.DebugLevel)
		r := NewZapReporter(zap.New(core))

		// Execute
		r.Report(Debug, "d")
		r.Report(Msg, "m")
		r.Report(Warn, "w")
		r.Report(Error, "e")

		// Check
		entries := logs.AllUntimed()
		if assert.Len(t, entries, 4, "four entries") {
			assert.Equal(t, zapcore.DebugLevel, entries[0].Level, "debug level")
			assert.Equal(t, zapcore.InfoLevel, entries[1].Level, "info level")
			assert.Equal(t, zapcore.WarnLevel, entries[2].Level, "warn level")
			assert.Equal(t, zapcore.ErrorLevel, entries[3].Level, "error level")
			assert.Equal(t, "e", entries[3].Message, "message kept")
		}
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		r := NewZapReporter(nil)
		assert.NotPanics(t, func() { r.Report(Error, "x") }, "does not panic")
	})
}
