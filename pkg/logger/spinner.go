package logger

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
)

// Spinner represents an animated spinner for long-running operations
type Spinner struct {
	mu       sync.Mutex
	active   bool
	message  string
	frames   []string
	interval time.Duration
	out      io.Writer
	stopChan chan struct{}
	done     chan struct{}
}

// SpinnerDots is the default spinner animation.
var SpinnerDots = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner writing to the default logger output
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message:  message,
		frames:   SpinnerDots,
		interval: 100 * time.Millisecond,
		out:      Output(),
	}
}

// Start starts the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			frame := s.frames[i%len(s.frames)]
			if ColorEnabled() {
				frame = colorPrefix.Sprint(frame)
			}
			_, _ = fmt.Fprintf(s.out, "\r%s %s", frame, msg)

			select {
			case <-stop:
				_, _ = fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(msg)+10))
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner and waits for the line to be cleared
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()
	<-done
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.Stop()
	Success(message)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.Stop()
	Error(message)
}

// UpdateMessage updates the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// WithSpinner runs a function with a spinner
func WithSpinner(message string, fn func() error) error {
	spinner := NewSpinner(message)
	spinner.Start()

	err := fn()

	if err != nil {
		spinner.Error(fmt.Sprintf("%s failed: %v", message, err))
	} else {
		spinner.Success(fmt.Sprintf("%s completed", message))
	}

	return err
}

// ProgressBar renders a percentage bar on a single terminal line.
type ProgressBar struct {
	mu      sync.Mutex
	percent float64
	width   int
	message string
	out     io.Writer
}

// NewProgressBar creates a new progress bar writing to w
func NewProgressBar(w io.Writer, message string) *ProgressBar {
	if w == nil {
		w = Output()
	}
	return &ProgressBar{
		width:   40,
		message: message,
		out:     w,
	}
}

// Set moves the bar to percent, clamped to [0, 100].
func (p *ProgressBar) Set(percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.percent = math.Max(0, math.Min(100, percent))
	p.draw()
}

// Percent returns the last value drawn.
func (p *ProgressBar) Percent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent
}

// Finish completes the current line so later output starts on a fresh one
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out)
}

func (p *ProgressBar) draw() {
	filled := int(p.percent / 100 * float64(p.width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	if ColorEnabled() {
		_, _ = fmt.Fprintf(p.out, "\r%s: %s %3.0f%%", p.message, colorInfo.Sprint(bar), p.percent)
		return
	}
	_, _ = fmt.Fprintf(p.out, "\r%s: [%s] %3.0f%%", p.message, bar, p.percent)
}
