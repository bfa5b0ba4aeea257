package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kika-project/kika-sampling/pkg/models"
)

const healthPath = "/healthz"

// Health returns the service status and version
func (c *Kika) Health(ctx context.Context) (*models.HealthStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}

	var status models.HealthStatus
	if err := decodeResponse(resp, &status); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}

	return &status, nil
}

// ValidateConnection tests the connection to the service by calling the health endpoint
func (c *Kika) ValidateConnection(ctx context.Context) error {
	status, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("connection validation failed: %w", err)
	}
	if status.Status != "healthy" {
		return fmt.Errorf("connection validation failed: service reports %q", status.Status)
	}
	return nil
}
