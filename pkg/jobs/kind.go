// Package jobs describes the sampling job kinds the CLI can create and the
// parameters used to fill them in.
package jobs

import "github.com/kika-project/kika-sampling/pkg/models"

// Kind describes one job type.
type Kind struct {
	Type        models.JobType
	Name        string
	Description string
	// Filename is the script the generator writes for this kind.
	Filename string
	// New returns a configuration with service defaults applied.
	New func() models.Configuration
	// Parameters are asked for, in order, when building a job interactively.
	Parameters []Parameter
}

// Parameter types understood by the prompts.
const (
	ParamInteger    = "integer"
	ParamFloat      = "float"
	ParamString     = "string"
	ParamBoolean    = "boolean"
	ParamIntList    = "int_list"
	ParamFloatList  = "float_list"
	ParamStringList = "string_list"
	// ParamFiles is a list of data/covariance file pairs.
	ParamFiles = "files"
)

// Parameter defines one configurable field of a job. Name is the field's
// path in the wire format, with nested objects joined by dots.
type Parameter struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"`
	Description string      `yaml:"description"`
	Default     interface{} `yaml:"default"`
	Required    bool        `yaml:"required"`
	Min         interface{} `yaml:"min,omitempty"`
	Max         interface{} `yaml:"max,omitempty"`
	Options     []string    `yaml:"options,omitempty"`
	// When names a boolean parameter that must be true for this one to apply.
	When string `yaml:"when,omitempty"`
	// CovOptional marks file pairs whose covariance path may be left empty.
	CovOptional bool `yaml:"cov_optional,omitempty"`
}
