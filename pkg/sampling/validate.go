package sampling

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kika-project/kika-sampling/pkg/client"
	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
)

// LargeSampleThreshold is the sample count above which validation warns.
const LargeSampleThreshold = 10000

// RemoteValidator runs semantic checks that need the processing service,
// such as file existence on the execution host.
type RemoteValidator interface {
	ValidateSampling(ctx context.Context, cfg models.Configuration) (*models.ValidationResult, error)
}

// ValidateConfig performs the local structural checks. Every applicable
// error and warning is collected in one pass.
func ValidateConfig(cfg models.Configuration) models.ValidationResult {
	var errs, warnings []string

	base := cfg.Base()
	if base.NumSamples < 1 {
		errs = append(errs, "Number of samples must be at least 1")
	}
	if base.NumSamples > LargeSampleThreshold {
		warnings = append(warnings, "Large number of samples (>10000) may take very long to process")
	}
	if base.Nprocs < 1 {
		errs = append(errs, "Number of processes must be at least 1")
	}
	if blank(base.OutputDir) {
		errs = append(errs, "Output directory is required")
	}

	switch c := deref(cfg).(type) {
	case models.ACEConfig:
		if len(c.ACEFiles) == 0 {
			errs = append(errs, "At least one ACE file is required")
		}
		for i, f := range c.ACEFiles {
			if blank(f.DataFilePath) {
				errs = append(errs, fmt.Sprintf("ACE file %d: file path is required", i+1))
			}
			if blank(f.CovFilePath) {
				warnings = append(warnings, fmt.Sprintf("ACE file %d: no covariance file specified", i+1))
			}
		}

	case models.ENDFConfig:
		if len(c.ENDFFiles) == 0 {
			errs = append(errs, "At least one ENDF file is required")
		}
		if len(c.LegendreCoeffs) == 0 {
			errs = append(errs, "At least one Legendre coefficient must be specified")
		}
		if c.GenerateACE {
			if blank(c.NJOYExe) {
				errs = append(errs, "NJOY executable path is required when generating ACE files")
			}
			if len(c.Temperatures) == 0 {
				errs = append(errs, "At least one temperature is required for ACE generation")
			}
			if blank(c.LibraryName) {
				errs = append(errs, "Library name is required for ACE generation")
			}
		}

	case models.ACEFromENDFConfig:
		if blank(c.RootDir) {
			errs = append(errs, "Root directory (from ENDF perturbation output) is required")
		}
		if len(c.ZAIDs) == 0 {
			errs = append(errs, "At least one ZAID is required")
		}
		if len(c.Temperatures) == 0 {
			errs = append(errs, "At least one temperature is required")
		}
		if len(c.CovFiles) == 0 {
			errs = append(errs, "At least one covariance file is required")
		}
	}

	return models.NewValidationResult(errs, warnings)
}

// ValidateConfigRemote asks the processing service to validate cfg. The
// caller always gets a usable result: when the service cannot be reached or
// fails, the local result is returned instead. A request the service rejects
// with a 4xx detail is reported as that single error. A 5xx response counts
// as the service being unavailable, not as a rejection, so its detail is
// logged and the local result is returned.
func ValidateConfigRemote(ctx context.Context, remote RemoteValidator, cfg models.Configuration) models.ValidationResult {
	if remote == nil {
		return ValidateConfig(cfg)
	}

	result, err := remote.ValidateSampling(ctx, cfg)
	if err == nil && result != nil {
		r := models.NewValidationResult(result.Errors, result.Warnings)
		r.Valid = r.Valid && result.Valid
		return r
	}
	if err == nil {
		err = errors.New("empty validation response")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError && apiErr.Detail != "" {
		return models.NewValidationResult([]string{apiErr.Detail}, nil)
	}

	logger.Warnf("Remote validation unavailable, using local checks: %v", err)
	return ValidateConfig(cfg)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
