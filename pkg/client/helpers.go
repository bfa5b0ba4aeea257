package client

import (
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds every non-streaming request.
const DefaultTimeout = 30 * time.Second

// NewKikaClient creates a client for baseURL. An empty apiKey sends no
// Authorization header.
func NewKikaClient(baseURL string, apiKey string) (*Kika, error) {
	return NewClient(Config{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		Timeout: DefaultTimeout,
	})
}

// GetAPIKey reads the API key stored in the named environment variable.
func GetAPIKey(envVarName string) string {
	if envVarName == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(envVarName))
}
