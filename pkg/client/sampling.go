package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kika-project/kika-sampling/pkg/models"
)

const (
	validatePath       = "/api/sampling/validate"
	generateScriptPath = "/api/sampling/generate-script"
	dryRunPath         = "/api/sampling/dry-run"
)

// ValidateSampling asks the service for semantic validation of cfg
func (c *Kika) ValidateSampling(ctx context.Context, cfg models.Configuration) (*models.ValidationResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, validatePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to validate configuration: %w", err)
	}

	var result models.ValidationResult
	if err := decodeResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to decode validation response: %w", err)
	}

	return &result, nil
}

// GenerateScript renders cfg on the service side
func (c *Kika) GenerateScript(ctx context.Context, cfg models.Configuration) (*models.GeneratedScript, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, generateScriptPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate script: %w", err)
	}

	var script models.GeneratedScript
	if err := decodeResponse(resp, &script); err != nil {
		return nil, fmt.Errorf("failed to decode script response: %w", err)
	}

	return &script, nil
}

// OpenDryRun submits cfg to the dry-run endpoint and returns the event
// stream. The caller owns the body. The request is bound to ctx, so
// cancelling ctx also ends the stream.
func (c *Kika) OpenDryRun(ctx context.Context, cfg models.Configuration) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodPost, dryRunPath, models.WithDryRun(cfg, true))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.do(c.streamClient, req)
	if err != nil {
		return nil, fmt.Errorf("failed to start dry run: %w", err)
	}

	return resp.Body, nil
}
