package sampling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
)

const defaultChunkSize = 4096

// ErrStreamIdle is reported when the dry-run stream stays silent for longer
// than the orchestrator's idle timeout.
var ErrStreamIdle = errors.New("dry-run stream idle timeout")

// DryRunOpener submits a dry-run request and returns the event stream body.
type DryRunOpener interface {
	OpenDryRun(ctx context.Context, cfg models.Configuration) (io.ReadCloser, error)
}

// Handlers receive dry-run feedback. Every field is optional. Handlers run
// on the goroutine reading the stream.
type Handlers struct {
	OnLog      func(entry models.LogEntry)
	OnProgress func(percent float64)
	OnComplete func()
	OnError    func(message string)
}

func (h Handlers) log(entry models.LogEntry) {
	if h.OnLog != nil {
		h.OnLog(entry)
	}
}

func (h Handlers) progress(v float64) {
	if h.OnProgress != nil {
		h.OnProgress(v)
	}
}

func (h Handlers) complete() {
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

func (h Handlers) fail(message string) {
	if h.OnError != nil {
		h.OnError(message)
	}
}

// Orchestrator runs dry runs against the processing service and relays
// progress to Handlers. Concurrent runs share no state.
type Orchestrator struct {
	opener DryRunOpener

	// IdleTimeout aborts a stream that delivers no data for this long.
	// Zero waits forever.
	IdleTimeout time.Duration
	// ChunkSize is the read size used on the stream body.
	ChunkSize int

	log logger.Logger
}

// NewOrchestrator creates an orchestrator submitting through opener.
func NewOrchestrator(opener DryRunOpener) *Orchestrator {
	return &Orchestrator{
		opener:    opener,
		ChunkSize: defaultChunkSize,
		log:       logger.WithPrefix("dry-run"),
	}
}

// RunDryRun submits cfg as a dry run and blocks until the stream ends, a
// terminal event arrives, or ctx is done. The dry-run flag is forced on a
// copy of cfg. Every failure is reported exactly once through OnError; the
// method itself never returns an error.
func (o *Orchestrator) RunDryRun(ctx context.Context, cfg models.Configuration, h Handlers) {
	cfg = models.WithDryRun(cfg, true)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var idle *time.Timer
	if o.IdleTimeout > 0 {
		idle = time.AfterFunc(o.IdleTimeout, func() { cancel(ErrStreamIdle) })
		defer idle.Stop()
	}

	o.log.Debugf("Submitting %s dry run", cfg.Type())
	body, err := o.opener.OpenDryRun(ctx, cfg)
	if err != nil {
		h.fail(failureMessage(ctx, "Failed to start dry run", err))
		return
	}
	defer func() { _ = body.Close() }()

	// Closing the body is what unblocks a pending Read on cancellation.
	stop := context.AfterFunc(ctx, func() { _ = body.Close() })
	defer stop()

	var lines LineBuffer
	buf := make([]byte, o.chunkSize())
	for {
		n, readErr := body.Read(buf)
		if idle != nil && n > 0 {
			idle.Reset(o.IdleTimeout)
		}
		if n > 0 {
			for _, line := range lines.Feed(buf[:n]) {
				if o.dispatch(line, h) {
					return
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			for _, line := range lines.Flush() {
				if o.dispatch(line, h) {
					return
				}
			}
			o.log.Debug("Stream ended")
			return
		}
		if readErr != nil {
			h.fail(failureMessage(ctx, "Dry run stream failed", readErr))
			return
		}
	}
}

// RunDryRunAsync runs RunDryRun on a new goroutine. The returned channel is
// closed once the run has finished and no handler will be called again.
func (o *Orchestrator) RunDryRunAsync(ctx context.Context, cfg models.Configuration, h Handlers) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		o.RunDryRun(ctx, cfg, h)
	}()
	return done
}

// dispatch forwards one line and reports whether it was a terminal event.
// Malformed payloads are dropped so one bad event cannot end the session.
func (o *Orchestrator) dispatch(line string, h Handlers) bool {
	evt, ok := ParseEventLine(line)
	if !ok {
		if strings.HasPrefix(line, eventPrefix) {
			o.log.Debugf("Skipping malformed event %q", line)
		}
		return false
	}

	switch evt.Type {
	case models.EventLog:
		if evt.Entry != nil {
			h.log(*evt.Entry)
		}
	case models.EventProgress:
		if evt.Value != nil {
			h.progress(*evt.Value)
		}
	case models.EventComplete:
		h.complete()
		return true
	case models.EventError:
		msg := evt.Message
		if msg == "" {
			msg = "Dry run failed"
		}
		h.fail(msg)
		return true
	default:
		o.log.Debugf("Ignoring unknown event type %q", evt.Type)
	}
	return false
}

func (o *Orchestrator) chunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return defaultChunkSize
}

// failureMessage prefers the cancellation cause over the transport error it
// produced, so callers see "context canceled" rather than "read on closed body".
func failureMessage(ctx context.Context, what string, err error) string {
	if cause := context.Cause(ctx); cause != nil {
		err = cause
	}
	return fmt.Sprintf("%s: %v", what, err)
}
