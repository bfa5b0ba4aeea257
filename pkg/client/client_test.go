package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kika-project/kika-sampling/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Kika {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "secret"})
	require.NoError(t, err)
	return c
}

func aceConfig() models.ACEConfig {
	cfg := models.NewACEConfig()
	cfg.ACEFiles = []models.FileEntry{{DataFilePath: "/a/fe56.ace", CovFilePath: "/a/fe56.cov"}}
	return cfg
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "://x", "/api"} {
		_, err := NewClient(Config{BaseURL: raw})
		assert.Error(t, err, "base URL %q", raw)
	}
}

func TestValidateSampling(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sampling/validate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request ID should be a UUID")

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ace", body["type"])
		assert.Equal(t, float64(100), body["num_samples"])
		files, ok := body["ace_files"].([]interface{})
		require.True(t, ok, "ace_files should be a list")
		require.Len(t, files, 1)
		assert.Equal(t, "file-1", files[0].(map[string]interface{})["id"])

		_ = json.NewEncoder(w).Encode(models.ValidationResult{
			Valid:    true,
			Errors:   []string{},
			Warnings: []string{"ACE file 1: xsdir not found"},
		})
	})

	result, err := c.ValidateSampling(context.Background(), aceConfig())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"ACE file 1: xsdir not found"}, result.Warnings)
}

func TestRequestIDFromContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fixed-id", r.Header.Get(RequestIDHeader))
		_ = json.NewEncoder(w).Encode(models.HealthStatus{Status: "healthy", Version: "0.1.0"})
	})

	status, err := c.Health(WithRequestID(context.Background(), "fixed-id"))
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", status.Version)
}

func TestAPIErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"string detail", http.StatusBadRequest, `{"detail":"Unknown configuration type: foo"}`, "Unknown configuration type: foo"},
		{"list detail", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","num_samples"],"msg":"field required"}]}`, "body.num_samples: field required"},
		{"raw body", http.StatusBadGateway, "upstream unavailable\n", "upstream unavailable"},
		{"empty body", http.StatusInternalServerError, "", "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GenerateScript(context.Background(), aceConfig())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, tt.status < 500, IsClientError(err))
		})
	}
}

func TestOpenDryRunStreamsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sampling/dry-run", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["dry_run"])
		files, ok := body["ace_files"].([]interface{})
		require.True(t, ok, "ace_files should be a list")
		require.Len(t, files, 1)
		assert.Equal(t, "file-1", files[0].(map[string]interface{})["id"])

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"type\":\"complete\"}\n\n")
	})

	cfg := aceConfig()
	cfg.DryRun = false
	body, err := c.OpenDryRun(context.Background(), cfg)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "data: {\"type\":\"complete\"}\n\n", string(data))
}

func TestOpenDryRunError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Invalid configuration"}`)
	})

	_, err := c.OpenDryRun(context.Background(), aceConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid configuration")
}

func TestStreamClientHasNoTimeout(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://localhost:8000", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Zero(t, c.streamClient.Timeout)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestValidateConnection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.HealthStatus{Status: "degraded"})
	})
	assert.Error(t, c.ValidateConnection(context.Background()))

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.HealthStatus{Status: "healthy"})
	})
	assert.NoError(t, c.ValidateConnection(context.Background()))
}

func TestGetAPIKey(t *testing.T) {
	t.Setenv("KIKA_TEST_API_KEY", "abc")
	assert.Equal(t, "abc", GetAPIKey("KIKA_TEST_API_KEY"))
	assert.Empty(t, GetAPIKey(""))
}
