package models

// Defaults mirror the processing service's request models.
const (
	DefaultNumSamples          = 100
	DefaultSamplingMethod      = "sobol"
	DefaultDecompositionMethod = "svd"
	DefaultSpace               = "log"
	DefaultSeed                = 42
	DefaultNprocs              = 4
	DefaultOutputDir           = "."
	DefaultNJOYVersion         = "NJOY 2016.78"
	DefaultLibraryName         = "endfb81"
	DefaultHighValThresh       = 1.0
	DefaultAcceptTol           = -1.0e-4
)

// DefaultCommon returns the shared settings with service defaults applied.
func DefaultCommon() Common {
	seed := DefaultSeed
	return Common{
		NumSamples:          DefaultNumSamples,
		MTList:              []int{},
		SamplingMethod:      DefaultSamplingMethod,
		DecompositionMethod: DefaultDecompositionMethod,
		Space:               DefaultSpace,
		Seed:                &seed,
		Nprocs:              DefaultNprocs,
		Verbose:             true,
		OutputDir:           DefaultOutputDir,
	}
}

// DefaultAdvancedOptions returns the advanced options with autofix disabled.
func DefaultAdvancedOptions() AdvancedOptions {
	return AdvancedOptions{
		Autofix:       AutofixNone,
		HighValThresh: DefaultHighValThresh,
		AcceptTol:     DefaultAcceptTol,
	}
}

// NewACEConfig returns an ACE job with defaults and no files.
func NewACEConfig() ACEConfig {
	return ACEConfig{
		Common:          DefaultCommon(),
		AdvancedOptions: DefaultAdvancedOptions(),
	}
}

// NewENDFConfig returns an ENDF job with defaults and no files.
func NewENDFConfig() ENDFConfig {
	return ENDFConfig{
		Common:         DefaultCommon(),
		LegendreCoeffs: []int{1, 2, 3},
		ACEGeneration: ACEGeneration{
			Temperatures: []float64{300.0},
			LibraryName:  DefaultLibraryName,
			NJOYVersion:  DefaultNJOYVersion,
		},
	}
}

// NewACEFromENDFConfig returns an ACE-from-ENDF job with defaults.
func NewACEFromENDFConfig() ACEFromENDFConfig {
	return ACEFromENDFConfig{
		Common:          DefaultCommon(),
		AdvancedOptions: DefaultAdvancedOptions(),
	}
}

// NewDefault returns the default configuration for the given job type.
func NewDefault(t JobType) (Configuration, error) {
	switch t {
	case JobTypeACE:
		return NewACEConfig(), nil
	case JobTypeENDF:
		return NewENDFConfig(), nil
	case JobTypeACEFromENDF:
		return NewACEFromENDFConfig(), nil
	case "":
		return nil, ErrMissingType
	default:
		return nil, &UnknownTypeError{Type: string(t)}
	}
}
