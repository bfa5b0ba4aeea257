package sampling

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/kika-project/kika-sampling/pkg/client"
	"github.com/kika-project/kika-sampling/pkg/models"
)

func TestValidateConfigSampleCount(t *testing.T) {
	cfg := aceJob("/a/fe56.ace")
	cfg.NumSamples = 0
	result := ValidateConfig(cfg)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Number of samples must be at least 1")

	cfg.NumSamples = 10001
	result = ValidateConfig(cfg)
	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Warnings)
}

func TestValidateConfigCollectsEverything(t *testing.T) {
	cfg := models.NewACEConfig()
	cfg.NumSamples = 0
	cfg.Nprocs = 0
	cfg.OutputDir = "  "

	result := ValidateConfig(cfg)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{
		"Number of samples must be at least 1",
		"Number of processes must be at least 1",
		"Output directory is required",
		"At least one ACE file is required",
	}, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateConfigACEFiles(t *testing.T) {
	cfg := aceJob("/a/fe56.ace", "")
	cfg.ACEFiles[0].CovFilePath = ""

	result := ValidateConfig(cfg)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"ACE file 2: file path is required"}, result.Errors)
	assert.Equal(t, []string{"ACE file 1: no covariance file specified"}, result.Warnings)
}

func TestValidateConfigENDF(t *testing.T) {
	cfg := endfJob("/e/fe56.endf")
	assert.True(t, ValidateConfig(cfg).Valid)

	cfg.GenerateACE = true
	cfg.NJOYExe = ""
	result := ValidateConfig(cfg)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "NJOY executable path is required when generating ACE files")

	cfg.NJOYExe = "/opt/njoy"
	cfg.Temperatures = nil
	cfg.LibraryName = ""
	cfg.LegendreCoeffs = nil
	result = ValidateConfig(cfg)
	assert.Equal(t, []string{
		"At least one Legendre coefficient must be specified",
		"At least one temperature is required for ACE generation",
		"Library name is required for ACE generation",
	}, result.Errors)
}

func TestValidateConfigACEFromENDF(t *testing.T) {
	assert.True(t, ValidateConfig(aceFromENDFJob()).Valid)

	result := ValidateConfig(models.NewACEFromENDFConfig())
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)
	assert.NotNil(t, result.Warnings)
}

type stubRemote struct {
	result *models.ValidationResult
	err    error
	calls  int
}

func (s *stubRemote) ValidateSampling(ctx context.Context, cfg models.Configuration) (*models.ValidationResult, error) {
	s.calls++
	return s.result, s.err
}

func TestValidateConfigRemoteFallsBackOnNetworkError(t *testing.T) {
	cfg := aceJob("/a/fe56.ace")
	cfg.ACEFiles[0].CovFilePath = ""
	remote := &stubRemote{err: errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")}

	got := ValidateConfigRemote(context.Background(), remote, cfg)
	if diff := cmp.Diff(ValidateConfig(cfg), got); diff != "" {
		t.Errorf("fallback result mismatch (-local +remote):\n%s", diff)
	}
	assert.Equal(t, 1, remote.calls)
}

func TestValidateConfigRemoteServerError(t *testing.T) {
	cfg := aceJob("/a/fe56.ace")
	remote := &stubRemote{err: &client.APIError{Status: 503, Detail: "Service unavailable"}}

	got := ValidateConfigRemote(context.Background(), remote, cfg)
	assert.Equal(t, ValidateConfig(cfg), got)
}

func TestValidateConfigRemoteRejected(t *testing.T) {
	remote := &stubRemote{err: &client.APIError{Status: 400, Detail: "Unknown configuration type: foo"}}

	got := ValidateConfigRemote(context.Background(), remote, aceJob("/a/fe56.ace"))
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"Unknown configuration type: foo"}, got.Errors)
	assert.Empty(t, got.Warnings)
}

func TestValidateConfigRemoteResult(t *testing.T) {
	remote := &stubRemote{result: &models.ValidationResult{
		Valid:  false,
		Errors: []string{"ACE file not found: /a/fe56.ace"},
	}}

	got := ValidateConfigRemote(context.Background(), remote, aceJob("/a/fe56.ace"))
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"ACE file not found: /a/fe56.ace"}, got.Errors)
	assert.NotNil(t, got.Warnings)

	remote.result = nil
	got = ValidateConfigRemote(context.Background(), remote, aceJob("/a/fe56.ace"))
	assert.True(t, got.Valid)
}

func TestValidateConfigRemoteNil(t *testing.T) {
	cfg := endfJob()
	assert.Equal(t, ValidateConfig(cfg), ValidateConfigRemote(context.Background(), nil, cfg))
}
