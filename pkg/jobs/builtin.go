package jobs

import (
	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

var (
	samplingMethods      = []string{"sobol", "lhs", "random"}
	decompositionMethods = []string{"svd", "cholesky", "eigen", "pca"}
	spaces               = []string{"log", "linear"}
	autofixLevels        = []string{
		string(models.AutofixNone),
		string(models.AutofixSoft),
		string(models.AutofixMedium),
		string(models.AutofixHard),
	}
)

func commonParameters() []Parameter {
	return []Parameter{
		{Name: "num_samples", Type: ParamInteger, Description: "Number of samples", Required: true, Min: 1},
		{Name: "mt_list", Type: ParamIntList, Description: "MT numbers to perturb (comma separated, empty for all)"},
		{Name: "sampling_method", Type: ParamString, Description: "Sampling method", Options: samplingMethods},
		{Name: "decomposition_method", Type: ParamString, Description: "Covariance decomposition method", Options: decompositionMethods},
		{Name: "space", Type: ParamString, Description: "Sampling space", Options: spaces},
		{Name: "seed", Type: ParamInteger, Description: "Random seed"},
		{Name: "nprocs", Type: ParamInteger, Description: "Number of parallel processes", Required: true, Min: 1},
		{Name: "output_dir", Type: ParamString, Description: "Output directory", Required: true},
	}
}

func advancedParameters() []Parameter {
	return []Parameter{
		{Name: "advanced_options.autofix", Type: ParamString, Description: "Covariance autofix level", Options: autofixLevels},
		{Name: "advanced_options.high_val_thresh", Type: ParamFloat, Description: "High value threshold for autofix"},
		{Name: "advanced_options.accept_tol", Type: ParamFloat, Description: "Eigenvalue acceptance tolerance"},
	}
}

func builtinKinds() []Kind {
	ace := Kind{
		Type:        models.JobTypeACE,
		Name:        "ACE Perturbation",
		Description: "Perturb ACE files using external covariance matrices",
		Filename:    sampling.ACEScriptFilename,
		New:         func() models.Configuration { return models.NewACEConfig() },
	}
	ace.Parameters = append([]Parameter{
		{Name: "ace_files", Type: ParamFiles, Description: "ACE file", Required: true},
	}, commonParameters()...)
	ace.Parameters = append(ace.Parameters,
		Parameter{Name: "xsdir_file", Type: ParamString, Description: "xsdir file to update (optional)"},
	)
	ace.Parameters = append(ace.Parameters, advancedParameters()...)

	endf := Kind{
		Type:        models.JobTypeENDF,
		Name:        "ENDF Perturbation",
		Description: "Perturb ENDF angular distributions, optionally generating ACE files with NJOY",
		Filename:    sampling.ENDFScriptFilename,
		New:         func() models.Configuration { return models.NewENDFConfig() },
	}
	endf.Parameters = append([]Parameter{
		{Name: "endf_files", Type: ParamFiles, Description: "ENDF file", Required: true, CovOptional: true},
		{Name: "legendre_coeffs", Type: ParamIntList, Description: "Legendre coefficients to perturb", Required: true},
	}, commonParameters()...)
	endf.Parameters = append(endf.Parameters,
		Parameter{Name: "generate_ace", Type: ParamBoolean, Description: "Generate ACE files with NJOY?"},
		Parameter{Name: "njoy_exe", Type: ParamString, Description: "NJOY executable path", Required: true, When: "generate_ace"},
		Parameter{Name: "temperatures", Type: ParamFloatList, Description: "Temperatures in K", Required: true, When: "generate_ace"},
		Parameter{Name: "library_name", Type: ParamString, Description: "Library name", Required: true, When: "generate_ace"},
		Parameter{Name: "njoy_version", Type: ParamString, Description: "NJOY version string", When: "generate_ace"},
		Parameter{Name: "xsdir_file", Type: ParamString, Description: "xsdir file to update (optional)", When: "generate_ace"},
	)

	fromENDF := Kind{
		Type:        models.JobTypeACEFromENDF,
		Name:        "ACE from Perturbed ENDF",
		Description: "Apply cross-section perturbations to the ACE files of a previous ENDF perturbation run",
		Filename:    sampling.ACEFromENDFScriptFilename,
		New:         func() models.Configuration { return models.NewACEFromENDFConfig() },
	}
	fromENDF.Parameters = append([]Parameter{
		{Name: "root_dir", Type: ParamString, Description: "Root directory of the ENDF perturbation output", Required: true},
		{Name: "zaids", Type: ParamIntList, Description: "ZAIDs to process", Required: true},
		{Name: "temperatures", Type: ParamFloatList, Description: "Temperatures in K", Required: true},
		{Name: "cov_files", Type: ParamStringList, Description: "Covariance files, one per ZAID", Required: true},
	}, commonParameters()...)
	fromENDF.Parameters = append(fromENDF.Parameters, advancedParameters()...)

	return []Kind{ace, endf, fromENDF}
}
