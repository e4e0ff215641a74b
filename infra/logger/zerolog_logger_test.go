package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLogger_DefaultLevelHidesDebug(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_LOG_LEVEL", "")
	var buf bytes.Buffer
	l := newZerologLogger("test", &buf)

	l.Debugf("debug %d", 1)
	l.Debugw("debugw", map[string]any{"k": 1})
	assert.Empty(t, buf.String())

	l.Infof("info %s", "line")
	out := buf.String()
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, "info line")
}

func TestZerologLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_LOG_LEVEL", "debug")
	var buf bytes.Buffer
	l := newZerologLogger("test", &buf)

	l.Debugw("aggregated", map[string]any{"group": "NORDIC"})
	out := buf.String()
	assert.Contains(t, out, `"group":"NORDIC"`)
	assert.Contains(t, out, "aggregated")
}

func TestZerologLogger_ConsoleFormatInDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_LOG_LEVEL", "")
	var buf bytes.Buffer
	l := newZerologLogger("test", &buf)

	l.Warnf("watch out")
	out := buf.String()
	assert.Contains(t, out, "watch out")
	// console format is not JSON
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}
