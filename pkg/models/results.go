package models

// ValidationResult is the outcome of validating a Configuration. Errors
// block generation and execution; warnings do not.
// @Description Validation outcome with user-facing messages.
// @name ValidationResult
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult builds a result whose Valid flag reflects errors.
func NewValidationResult(errors, warnings []string) ValidationResult {
	if errors == nil {
		errors = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// GeneratedScript is a rendered processing script. It is never persisted by
// the generator; callers decide whether to save, copy or run it.
// @Description Generated Python script.
// @name GeneratedScript
type GeneratedScript struct {
	Script           string `json:"script"`
	Filename         string `json:"filename"`
	EstimatedRuntime string `json:"estimated_runtime,omitempty"`
}

// HealthStatus is returned by the processing service health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the error body returned by the processing service.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
