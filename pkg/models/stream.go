package models

// LogLevel is the severity of a streamed log entry.
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// LogEntry is a single line of dry-run output. Timestamps are wall-clock
// HH:MM:SS strings produced by the service.
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Level     LogLevel `json:"level"`
	Message   string   `json:"message"`
}

// EventType discriminates dry-run stream events.
type EventType string

const (
	EventLog      EventType = "log"
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// StreamEvent is the JSON payload of one "data:" line of the dry-run stream.
type StreamEvent struct {
	Type    EventType `json:"type"`
	Entry   *LogEntry `json:"entry,omitempty"`
	Value   *float64  `json:"value,omitempty"`
	Message string    `json:"message,omitempty"`
}

// LogEvent builds a log event.
func LogEvent(entry LogEntry) StreamEvent {
	return StreamEvent{Type: EventLog, Entry: &entry}
}

// ProgressEvent builds a progress event with a percentage in [0, 100].
func ProgressEvent(value float64) StreamEvent {
	return StreamEvent{Type: EventProgress, Value: &value}
}

// CompleteEvent builds the terminal success event.
func CompleteEvent() StreamEvent {
	return StreamEvent{Type: EventComplete}
}

// ErrorEvent builds the terminal failure event.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Message: message}
}
