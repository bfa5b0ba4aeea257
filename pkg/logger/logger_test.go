package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: WarnLevel, Writer: &buf, NoColor: true})

	l.Info("hidden")
	l.Warnf("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  shown 1")
}

func TestLoggerPrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: DebugLevel, Writer: &buf, NoColor: true})

	l.WithPrefix("dry-run").WithFields(map[string]interface{}{"zeta": 1, "alpha": "x"}).Debug("msg")

	assert.Equal(t, "DEBUG [dry-run] alpha=x zeta=1 msg\n", buf.String())
}

func TestChildLoggerSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: InfoLevel, Writer: &buf, NoColor: true})
	child := parent.WithPrefix("child")

	parent.(*logger).s.level = ErrorLevel
	child.Warn("dropped")

	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("nonsense"))
}

func TestRemoteUsesServiceTimestamp(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	SetLevel(InfoLevel)
	defer SetOutput(nil)

	Remote("12:00:01", "warning", "covariance missing")
	Remote("12:00:02", "debug", "not shown")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[12:00:01] WARN "), out)
	assert.Contains(t, out, "covariance missing")
	assert.NotContains(t, out, "not shown")
}

func TestProgressBarClamps(t *testing.T) {
	var buf bytes.Buffer
	SetNoColor(true)
	bar := NewProgressBar(&buf, "Dry run")

	bar.Set(150)
	assert.Equal(t, 100.0, bar.Percent())
	bar.Set(-3)
	assert.Equal(t, 0.0, bar.Percent())
	assert.Contains(t, buf.String(), "Dry run: [")
}
