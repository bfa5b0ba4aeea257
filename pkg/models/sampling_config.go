package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JobType is the discriminant of a sampling Configuration.
type JobType string

const (
	// JobTypeACE perturbs ACE files with external covariance matrices.
	JobTypeACE JobType = "ace"
	// JobTypeENDF perturbs ENDF files, optionally generating ACE files through NJOY.
	JobTypeENDF JobType = "endf"
	// JobTypeACEFromENDF applies cross-section perturbations to a prior ENDF perturbation output tree.
	JobTypeACEFromENDF JobType = "ace-from-endf"
)

// JobTypes lists every supported job type in presentation order.
var JobTypes = []JobType{JobTypeACE, JobTypeENDF, JobTypeACEFromENDF}

// Autofix is the covariance matrix autofix policy passed to the perturbation library.
type Autofix string

const (
	AutofixNone   Autofix = "none"
	AutofixSoft   Autofix = "soft"
	AutofixMedium Autofix = "medium"
	AutofixHard   Autofix = "hard"
)

// UnknownTypeError is returned when a configuration carries an unsupported discriminant.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("Unknown configuration type: %s", e.Type)
}

// ErrMissingType is returned when a configuration document has no type field.
var ErrMissingType = errors.New("configuration type is required")

// Configuration is a sampling job description. It is implemented only by
// ACEConfig, ENDFConfig and ACEFromENDFConfig (and pointers to them).
type Configuration interface {
	// Type returns the job discriminant.
	Type() JobType
	// Base returns the settings shared by every job type.
	Base() Common
	// FileCount returns the number of inputs processed per sample.
	FileCount() int

	isConfiguration()
}

// Common holds the fields shared by every job type.
// @Description Shared sampling parameters.
// @name Common
type Common struct {
	// Number of perturbed samples to generate.
	NumSamples int `json:"num_samples" yaml:"num_samples"`
	// Reaction MT numbers to perturb. Empty means all.
	MTList []int `json:"mt_list" yaml:"mt_list"`
	// Sampling algorithm (sobol, lhs, random), passed through verbatim.
	SamplingMethod string `json:"sampling_method" yaml:"sampling_method"`
	// Covariance decomposition algorithm (svd, cholesky, eigen, pca), passed through verbatim.
	DecompositionMethod string `json:"decomposition_method" yaml:"decomposition_method"`
	// Sampling space (log, linear).
	Space string `json:"space" yaml:"space"`
	// Random seed. Nil means non-deterministic.
	Seed *int `json:"seed" yaml:"seed"`
	// Parallel worker count.
	Nprocs int `json:"nprocs" yaml:"nprocs"`
	DryRun bool `json:"dry_run" yaml:"dry_run"`
	Verbose bool `json:"verbose" yaml:"verbose"`
	// Directory receiving the perturbed outputs.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// FileEntry pairs a nuclear data file with its covariance file. The
// processing service requires ID; entries without one are numbered
// "file-1", "file-2", ... by position when encoded to JSON.
type FileEntry struct {
	ID           string `json:"id" yaml:"id,omitempty"`
	DataFilePath string `json:"data_file_path" yaml:"data_file_path"`
	CovFilePath  string `json:"cov_file_path" yaml:"cov_file_path"`
	ZAID         *int   `json:"zaid,omitempty" yaml:"zaid,omitempty"`
}

// BlockRange is an inclusive (start, end) block index pair.
type BlockRange [2]int

// AdvancedOptions controls covariance matrix fixing.
type AdvancedOptions struct {
	Autofix       Autofix  `json:"autofix" yaml:"autofix"`
	HighValThresh float64  `json:"high_val_thresh" yaml:"high_val_thresh"`
	AcceptTol     float64  `json:"accept_tol" yaml:"accept_tol"`
	// Blocks to drop from the covariance matrix, keyed by isotope identifier.
	RemoveBlocks map[int][]BlockRange `json:"remove_blocks,omitempty" yaml:"remove_blocks,omitempty"`
}

// ACEConfig describes an ACE perturbation job.
// @Description ACE perturbation job.
// @name ACEConfig
type ACEConfig struct {
	Common `yaml:",inline"`
	// Ordered ACE/covariance pairs. Order determines result ordering.
	ACEFiles []FileEntry `json:"ace_files" yaml:"ace_files"`
	// Optional xsdir file to update with the perturbed tables.
	XSDirFile       string          `json:"xsdir_file" yaml:"xsdir_file"`
	AdvancedOptions AdvancedOptions `json:"advanced_options" yaml:"advanced_options"`
}

// ACEGeneration holds the NJOY options used when an ENDF job also produces ACE files.
type ACEGeneration struct {
	NJOYExe      string    `json:"njoy_exe" yaml:"njoy_exe"`
	Temperatures []float64 `json:"temperatures" yaml:"temperatures"`
	LibraryName  string    `json:"library_name" yaml:"library_name"`
	NJOYVersion  string    `json:"njoy_version" yaml:"njoy_version"`
	XSDirFile    string    `json:"xsdir_file" yaml:"xsdir_file"`
}

// ENDFConfig describes an ENDF perturbation job.
// @Description ENDF perturbation job.
// @name ENDFConfig
type ENDFConfig struct {
	Common `yaml:",inline"`
	// Ordered ENDF files. A missing covariance path falls back to the in-file MF34 section.
	ENDFFiles      []FileEntry `json:"endf_files" yaml:"endf_files"`
	LegendreCoeffs []int       `json:"legendre_coeffs" yaml:"legendre_coeffs"`
	GenerateACE    bool        `json:"generate_ace" yaml:"generate_ace"`
	ACEGeneration  `yaml:",inline"`
}

// ACEFromENDFConfig describes an ACE perturbation applied to a prior ENDF perturbation output.
// @Description ACE-from-perturbed-ENDF job.
// @name ACEFromENDFConfig
type ACEFromENDFConfig struct {
	Common `yaml:",inline"`
	// Root of the ENDF perturbation output tree.
	RootDir         string          `json:"root_dir" yaml:"root_dir"`
	ZAIDs           []int           `json:"zaids" yaml:"zaids"`
	Temperatures    []float64       `json:"temperatures" yaml:"temperatures"`
	CovFiles        []string        `json:"cov_files" yaml:"cov_files"`
	AdvancedOptions AdvancedOptions `json:"advanced_options" yaml:"advanced_options"`
}

func (c ACEConfig) Type() JobType  { return JobTypeACE }
func (c ACEConfig) Base() Common   { return c.Common }
func (c ACEConfig) FileCount() int { return len(c.ACEFiles) }
func (ACEConfig) isConfiguration() {}

func (c ENDFConfig) Type() JobType  { return JobTypeENDF }
func (c ENDFConfig) Base() Common   { return c.Common }
func (c ENDFConfig) FileCount() int { return len(c.ENDFFiles) }
func (ENDFConfig) isConfiguration() {}

func (c ACEFromENDFConfig) Type() JobType  { return JobTypeACEFromENDF }
func (c ACEFromENDFConfig) Base() Common   { return c.Common }
func (c ACEFromENDFConfig) FileCount() int { return len(c.ZAIDs) }
func (ACEFromENDFConfig) isConfiguration() {}

// MarshalJSON adds the type discriminant.
func (c ACEConfig) MarshalJSON() ([]byte, error) {
	type plain ACEConfig
	c.ACEFiles = WithFileIDs(c.ACEFiles)
	return json.Marshal(struct {
		Type JobType `json:"type"`
		plain
	}{JobTypeACE, plain(c)})
}

// MarshalJSON adds the type discriminant.
func (c ENDFConfig) MarshalJSON() ([]byte, error) {
	type plain ENDFConfig
	c.ENDFFiles = WithFileIDs(c.ENDFFiles)
	return json.Marshal(struct {
		Type JobType `json:"type"`
		plain
	}{JobTypeENDF, plain(c)})
}

// MarshalJSON adds the type discriminant.
func (c ACEFromENDFConfig) MarshalJSON() ([]byte, error) {
	type plain ACEFromENDFConfig
	return json.Marshal(struct {
		Type JobType `json:"type"`
		plain
	}{JobTypeACEFromENDF, plain(c)})
}

// WithFileIDs returns a copy of entries where every blank ID is replaced by
// its positional "file-N" identifier. entries is not modified.
func WithFileIDs(entries []FileEntry) []FileEntry {
	if entries == nil {
		return nil
	}
	out := make([]FileEntry, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			e.ID = fmt.Sprintf("file-%d", i+1)
		}
		out[i] = e
	}
	return out
}

// MissingFileIDs returns the field path of every file entry in cfg that has
// no ID, such as "ace_files.0.id".
func MissingFileIDs(cfg Configuration) []string {
	var field string
	var entries []FileEntry
	switch c := cfg.(type) {
	case ACEConfig:
		field, entries = "ace_files", c.ACEFiles
	case *ACEConfig:
		field, entries = "ace_files", c.ACEFiles
	case ENDFConfig:
		field, entries = "endf_files", c.ENDFFiles
	case *ENDFConfig:
		field, entries = "endf_files", c.ENDFFiles
	}

	var missing []string
	for i, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			missing = append(missing, fmt.Sprintf("%s.%d.id", field, i))
		}
	}
	return missing
}

// UnmarshalConfiguration decodes a JSON configuration document, dispatching on
// its type field. Fields absent from the document keep their defaults.
func UnmarshalConfiguration(data []byte) (Configuration, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	target, err := NewDefault(JobType(head.Type))
	if err != nil {
		return nil, err
	}

	switch cfg := target.(type) {
	case ACEConfig:
		if err := json.Unmarshal(data, (*aceNoMarshal)(&cfg)); err != nil {
			return nil, fmt.Errorf("failed to decode ace configuration: %w", err)
		}
		return cfg, nil
	case ENDFConfig:
		if err := json.Unmarshal(data, (*endfNoMarshal)(&cfg)); err != nil {
			return nil, fmt.Errorf("failed to decode endf configuration: %w", err)
		}
		return cfg, nil
	case ACEFromENDFConfig:
		if err := json.Unmarshal(data, (*aceFromENDFNoMarshal)(&cfg)); err != nil {
			return nil, fmt.Errorf("failed to decode ace-from-endf configuration: %w", err)
		}
		return cfg, nil
	}

	return nil, &UnknownTypeError{Type: head.Type}
}

// Method-free views used for decoding so the type field is ignored.
type (
	aceNoMarshal         ACEConfig
	endfNoMarshal        ENDFConfig
	aceFromENDFNoMarshal ACEFromENDFConfig
)

// WithDryRun returns a copy of cfg with the dry-run flag set. cfg is not modified.
func WithDryRun(cfg Configuration, dryRun bool) Configuration {
	switch c := cfg.(type) {
	case ACEConfig:
		c.DryRun = dryRun
		return c
	case *ACEConfig:
		cp := *c
		cp.DryRun = dryRun
		return cp
	case ENDFConfig:
		c.DryRun = dryRun
		return c
	case *ENDFConfig:
		cp := *c
		cp.DryRun = dryRun
		return cp
	case ACEFromENDFConfig:
		c.DryRun = dryRun
		return c
	case *ACEFromENDFConfig:
		cp := *c
		cp.DryRun = dryRun
		return cp
	}
	return cfg
}
