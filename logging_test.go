package phongdemo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := newLogger(&stdout, &stderr, "demo", false, false)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("broken: %v", "x")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "[demo] INFO: hello world")
	assert.Contains(t, stderr.String(), "[demo] WARN: careful")
	assert.Contains(t, stderr.String(), "[demo] ERROR: broken: x")
	assert.NotContains(t, stdout.String(), "WARN")
}

func TestDefaultLogger_Debug(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := newLogger(&stdout, &stderr, "", false, false)
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Contains(t, stdout.String(), "DEBUG: visible")
	assert.NotContains(t, stdout.String(), "[")
}

func TestLoggingModule_InstallsLogger(t *testing.T) {
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "x"}).Build()

	_, ok := app.Logger().(*DefaultLogger)
	assert.True(t, ok)
	_, ok = Resource[DefaultLogger](app)
	assert.True(t, ok)
}
