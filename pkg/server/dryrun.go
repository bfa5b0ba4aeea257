package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

// handleDryRun streams a simulated execution of the job. The perturbation
// library is not available to the service, so only validation is real.
func (s *Server) handleDryRun(c *gin.Context) {
	cfg, ok := s.bindConfig(c)
	if !ok {
		return
	}

	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	emit := func(evt models.StreamEvent) bool {
		data, err := sampling.FormatEvent(evt)
		if err != nil {
			s.log.Errorf("Failed to encode event: %v", err)
			return false
		}
		if _, err := c.Writer.Write(data); err != nil {
			return false
		}
		c.Writer.Flush()
		return true
	}

	s.simulateDryRun(c.Request.Context(), cfg, emit)
}

// simulateDryRun emits the dry-run event sequence. It stops early when emit
// fails or ctx is done.
func (s *Server) simulateDryRun(ctx context.Context, cfg models.Configuration, emit func(models.StreamEvent) bool) {
	logf := func(level models.LogLevel, format string, args ...interface{}) bool {
		return emit(models.LogEvent(models.LogEntry{
			Timestamp: s.opts.Now().Format("15:04:05"),
			Level:     level,
			Message:   fmt.Sprintf(format, args...),
		}))
	}
	step := func(percent float64, delay time.Duration) bool {
		return emit(models.ProgressEvent(percent)) && pause(ctx, delay)
	}

	base := cfg.Base()
	if !logf(models.LogLevelInfo, "Starting dry run...") ||
		!logf(models.LogLevelInfo, "Configuration type: %s", cfg.Type()) ||
		!step(10, s.opts.StepDelay) {
		return
	}

	validation := sampling.ValidateConfig(cfg)
	if !validation.Valid {
		for _, e := range validation.Errors {
			if !logf(models.LogLevelError, "%s", e) {
				return
			}
		}
		emit(models.ErrorEvent("Validation failed"))
		return
	}
	for _, w := range validation.Warnings {
		if !logf(models.LogLevelWarning, "%s", w) {
			return
		}
	}

	if !logf(models.LogLevelInfo, "Configuration validated successfully") ||
		!step(30, s.opts.StepDelay) {
		return
	}

	n := cfg.FileCount()
	if !logf(models.LogLevelInfo, "Processing %d file(s) with %d samples", n, base.NumSamples) {
		return
	}
	for i := 0; i < n; i++ {
		if !logf(models.LogLevelInfo, "Processing file %d/%d...", i+1, n) ||
			!step(30+float64(i+1)/float64(n)*60, s.opts.FileDelay) {
			return
		}
	}

	if !logf(models.LogLevelInfo, "Generating perturbation factors...") ||
		!step(95, s.opts.StepDelay) {
		return
	}

	if !logf(models.LogLevelInfo, "Dry run completed! Would generate %d samples per isotope.", base.NumSamples) ||
		!emit(models.ProgressEvent(100)) {
		return
	}
	emit(models.CompleteEvent())
}

// pause waits for d and reports false if ctx ended first.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
