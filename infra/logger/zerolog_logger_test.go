package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerComponentField(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "experiment")
	l.Infof("hello")
	out := buf.String()
	assert.True(t, strings.Contains(out, `"component":"experiment"`), out)
	assert.True(t, strings.Contains(out, "hello"), out)
}

func TestZerologLoggerLevelFilter(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "test")
	l.Infof("hidden")
	l.Warnf("shown")
	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"), out)
	assert.True(t, strings.Contains(out, "shown"), out)
}
