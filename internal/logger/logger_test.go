package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbosityFiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	prev := Verbosity()
	t.Cleanup(func() {
		SetVerbosity(int(prev))
		SetOutput(os.Stderr)
	})

	SetVerbosity(int(Info))
	Errorf("boom %d", 1)
	Infof("hello %s", "there")
	Debugf("hidden debug")
	Tracef("hidden trace")

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "boom 1")
	assert.Contains(t, out, "hello there")
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	SetVerbosity(int(Trace))
	Tracef("visible %s", "trace")
	assert.Contains(t, buf.String(), "[TRACE] visible trace")
	assert.Contains(t, buf.String(), "logger_test.go")
}
