package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	l := New(Options{Debug: debug, Stdout: &stdout, Stderr: &stderr, NoColor: true})
	return l, &stdout, &stderr
}

func TestLogger_LevelSplit(t *testing.T) {
	l, stdout, stderr := newTestLogger(true)

	l.Debug("debug %d", 1)
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error %s", "message")

	assert.Contains(t, stdout.String(), "[DEBUG] debug 1")
	assert.Contains(t, stdout.String(), "[INFO] info message")
	assert.NotContains(t, stdout.String(), "warn message")
	assert.NotContains(t, stdout.String(), "error message")

	assert.Contains(t, stderr.String(), "[WARN] warn message")
	assert.Contains(t, stderr.String(), "[ERROR] error message")
	assert.NotContains(t, stderr.String(), "info message")
}

func TestLogger_DebugDisabled(t *testing.T) {
	l, stdout, _ := newTestLogger(false)

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "shown")
	assert.False(t, l.IsDebugEnabled())
}

func TestLogger_WithPrefix(t *testing.T) {
	l, stdout, stderr := newTestLogger(true)

	sent := l.WithPrefix("[SENT]")
	sent.Debug("hello")
	sent.Error("boom")
	sent.WithPrefix("[x]").Info("nested")

	assert.Contains(t, stdout.String(), "[DEBUG] [SENT] hello")
	assert.Contains(t, stdout.String(), "[INFO] [SENT] [x] nested")
	assert.Contains(t, stderr.String(), "[ERROR] [SENT] boom")
}

func TestLogger_PercentWithoutArgs(t *testing.T) {
	l, stdout, _ := newTestLogger(false)
	l.Info("100% done")
	assert.Contains(t, stdout.String(), "100% done")
}

func TestLogLines(t *testing.T) {
	var got []string
	emit := func(format string, args ...interface{}) {
		got = append(got, args[0].(string))
	}

	LogLines(emit, "first  \nsecond\r\n\n")
	assert.Equal(t, []string{"first", "second"}, got)

	got = nil
	LogLines(emit, "")
	assert.Empty(t, got)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing happens")
	assert.NotNil(t, l.WithPrefix("[p]"))
}
