package sampling

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// eventPrefix marks payload lines of the dry-run stream.
const eventPrefix = "data:"

// LineBuffer splits an arbitrarily chunked byte stream into complete lines.
// A line may span several chunks; the unterminated tail is kept until the
// next Feed or Flush.
type LineBuffer struct {
	pending []byte
}

// Feed appends chunk and returns every line it completed, without the
// trailing newline or carriage return.
func (b *LineBuffer) Feed(chunk []byte) []string {
	b.pending = append(b.pending, chunk...)

	var lines []string
	for {
		i := bytes.IndexByte(b.pending, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, strings.TrimSuffix(string(b.pending[:i]), "\r"))
		b.pending = b.pending[i+1:]
	}
	if len(b.pending) == 0 {
		b.pending = nil
	}
	return lines
}

// Flush returns the unterminated remainder, if any, and empties the buffer.
func (b *LineBuffer) Flush() []string {
	if len(b.pending) == 0 {
		return nil
	}
	line := strings.TrimSuffix(string(b.pending), "\r")
	b.pending = nil
	return []string{line}
}

// Pending reports how many bytes are waiting for a newline.
func (b *LineBuffer) Pending() int {
	return len(b.pending)
}

// ParseEventLine decodes one stream line. ok is false for blank lines,
// non-data lines and malformed payloads.
func ParseEventLine(line string) (models.StreamEvent, bool) {
	if !strings.HasPrefix(line, eventPrefix) {
		return models.StreamEvent{}, false
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, eventPrefix))
	if payload == "" {
		return models.StreamEvent{}, false
	}

	var evt models.StreamEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		return models.StreamEvent{}, false
	}
	return evt, true
}

// FormatEvent renders evt as one stream record, terminated by a blank line.
func FormatEvent(evt models.StreamEvent) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data)+len(eventPrefix)+3)
	out = append(out, eventPrefix...)
	out = append(out, ' ')
	out = append(out, data...)
	out = append(out, '\n', '\n')
	return out, nil
}
