package logger

import (
	"fmt"
	"strings"
)

// Icons and symbols for different log types
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconInfo    = "ℹ️"
	IconRocket  = "🚀"
	IconNetwork = "🌐"
	IconTime    = "⏱️"
	IconFile    = "📄"
	IconRefresh = "🔄"
	IconDot     = "•"
	IconArrow   = "→"
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	defaultLogger.Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	defaultLogger.Info(IconRefresh + " " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// Network logs a network-related message
func Network(args ...interface{}) {
	defaultLogger.Info(IconNetwork + " " + fmt.Sprint(args...))
}

// Networkf logs a formatted network message
func Networkf(format string, args ...interface{}) {
	Network(fmt.Sprintf(format, args...))
}

// Remote prints a log line produced by the processing service, keeping the
// service's own timestamp.
func Remote(timestamp, level, message string) {
	l, ok := defaultLogger.(*logger)
	if !ok {
		defaultLogger.Info(message)
		return
	}
	lvl := ParseLevel(level)
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if lvl < l.s.level {
		return
	}
	levelStr, levelColor := levelString(lvl)
	_, _ = fmt.Fprintf(l.s.writer, "%s %s %s %s\n",
		l.paint(colorTime, "["+timestamp+"]"),
		l.paint(levelColor, levelStr),
		l.paint(colorPrefix, IconArrow),
		message)
}

// LogSection creates a visual section separator
func LogSection(title string) {
	line := strings.Repeat("=", 50)
	w := Output()
	if ColorEnabled() {
		_, _ = fmt.Fprintln(w, colorPrefix.Sprint(line))
		_, _ = fmt.Fprintln(w, colorHeader.Sprint(title))
		_, _ = fmt.Fprintln(w, colorPrefix.Sprint(line))
		return
	}
	_, _ = fmt.Fprintln(w, line)
	_, _ = fmt.Fprintln(w, title)
	_, _ = fmt.Fprintln(w, line)
}

// LogList logs a list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	w := Output()
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  %s %s\n", IconDot, item)
	}
}

// LogKeyValue logs a key-value pair with nice formatting
func LogKeyValue(key string, value interface{}) {
	w := Output()
	if ColorEnabled() {
		_, _ = fmt.Fprintf(w, "%s %v\n", colorPrefix.Sprint(key+":"), value)
		return
	}
	_, _ = fmt.Fprintf(w, "%s: %v\n", key, value)
}
