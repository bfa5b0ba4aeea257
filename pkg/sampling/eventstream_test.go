package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kika-project/kika-sampling/pkg/models"
)

func TestLineBufferSplitsAcrossChunks(t *testing.T) {
	var b LineBuffer

	assert.Empty(t, b.Feed([]byte(`data: {"type":"pro`)))
	assert.Equal(t, 18, b.Pending())

	lines := b.Feed([]byte("gress\",\"value\":50}\r\n\ndata: {\"type\""))
	assert.Equal(t, []string{`data: {"type":"progress","value":50}`, ""}, lines)

	lines = b.Feed([]byte(":\"complete\"}\n"))
	assert.Equal(t, []string{`data: {"type":"complete"}`}, lines)
	assert.Zero(t, b.Pending())
	assert.Nil(t, b.Flush())
}

func TestLineBufferFlush(t *testing.T) {
	var b LineBuffer
	b.Feed([]byte("data: {\"type\":\"complete\"}"))
	assert.Equal(t, []string{`data: {"type":"complete"}`}, b.Flush())
	assert.Zero(t, b.Pending())
}

func TestParseEventLine(t *testing.T) {
	evt, ok := ParseEventLine(`data: {"type":"log","entry":{"timestamp":"10:00:00","level":"info","message":"start"}}`)
	require.True(t, ok)
	assert.Equal(t, models.EventLog, evt.Type)
	require.NotNil(t, evt.Entry)
	assert.Equal(t, "start", evt.Entry.Message)
	assert.Equal(t, models.LogLevelInfo, evt.Entry.Level)

	evt, ok = ParseEventLine(`data:{"type":"error","message":"boom"}`)
	require.True(t, ok)
	assert.Equal(t, "boom", evt.Message)

	for _, line := range []string{"", "data:", "data:   ", ": keepalive", "event: progress", "data: {not json", `data: "text"`} {
		_, ok := ParseEventLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestFormatEventRoundTrip(t *testing.T) {
	out, err := FormatEvent(models.ProgressEvent(42.5))
	require.NoError(t, err)
	assert.Equal(t, "data: {\"type\":\"progress\",\"value\":42.5}\n\n", string(out))

	var b LineBuffer
	lines := b.Feed(out)
	require.Len(t, lines, 2)
	evt, ok := ParseEventLine(lines[0])
	require.True(t, ok)
	require.NotNil(t, evt.Value)
	assert.Equal(t, 42.5, *evt.Value)
}
