package sampling

import (
	"fmt"
	"strconv"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// Script filenames, one per job type.
const (
	ACEScriptFilename         = "run_ace_perturbation.py"
	ENDFScriptFilename        = "run_endf_perturbation.py"
	ACEFromENDFScriptFilename = "run_ace_from_endf_perturbation.py"
)

// ScriptFilename returns the fixed script filename for a job type.
func ScriptFilename(t models.JobType) string {
	switch t {
	case models.JobTypeACE:
		return ACEScriptFilename
	case models.JobTypeENDF:
		return ENDFScriptFilename
	case models.JobTypeACEFromENDF:
		return ACEFromENDFScriptFilename
	}
	return ""
}

// GenerateScript renders cfg into a self-contained Python script. cfg is
// assumed to be valid; run ValidateConfig first. The output depends only on
// cfg, so identical configurations produce identical scripts.
func GenerateScript(cfg models.Configuration) models.GeneratedScript {
	var body string
	switch c := deref(cfg).(type) {
	case models.ACEConfig:
		body = renderACE(c)
	case models.ENDFConfig:
		body = renderENDF(c)
	case models.ACEFromENDFConfig:
		body = renderACEFromENDF(c)
	default:
		panic(fmt.Sprintf("sampling: unsupported configuration %T", cfg))
	}

	return models.GeneratedScript{
		Script:           body,
		Filename:         ScriptFilename(cfg.Type()),
		EstimatedRuntime: EstimateRuntime(cfg),
	}
}

// deref turns pointer variants into values so the renderers see one shape.
func deref(cfg models.Configuration) models.Configuration {
	switch c := cfg.(type) {
	case *models.ACEConfig:
		return *c
	case *models.ENDFConfig:
		return *c
	case *models.ACEFromENDFConfig:
		return *c
	}
	return cfg
}

func renderACE(c models.ACEConfig) string {
	n := len(c.ACEFiles)
	b := &pyBuilder{}

	b.line("import os").
		line("import kika").
		line("from kika.sampling.ace_perturbation import perturb_ACE_files").
		blank()

	b.comment("ACE file paths")
	for i, f := range c.ACEFiles {
		b.line("ace_%d = %s", i+1, pySingle(f.DataFilePath))
	}
	b.blank().comment("Covariance file paths")
	for i, f := range c.ACEFiles {
		b.line("cov_%d = %s", i+1, pySingle(f.CovFilePath))
	}
	b.blank().line("acelist = %s", pyNameList("ace", n))

	writeCovarianceLoading(b, n)

	b.blank().comment("Sampling parameters").assignments(13,
		assignment{"mt_numbers", pyIntList(c.MTList)},
		assignment{"num_samples", strconv.Itoa(c.NumSamples)},
		assignment{"output_dir", pyDouble(c.OutputDir)},
		assignment{"xsdir_file", fmt.Sprintf("%s if %s else None", pyDouble(c.XSDirFile), pyDouble(c.XSDirFile))},
		assignment{"seed", pyOptionalInt(c.Seed)},
		assignment{"nprocs", strconv.Itoa(c.Nprocs)},
	)

	b.blank().comment("Run perturbation").
		line(`print(f"Generating {num_samples} perturbed ACE files...")`).
		call("perturb_ACE_files",
			assignment{"ace_files", "acelist"},
			assignment{"cov_files", "covmatlist"},
			assignment{"mt_list", "mt_numbers"},
			assignment{"num_samples", "num_samples"},
			assignment{"output_dir", "output_dir"},
			assignment{"xsdir_file", "xsdir_file"},
			assignment{"sampling_method", pySingle(c.SamplingMethod)},
			assignment{"decomposition_method", pySingle(c.DecompositionMethod)},
			assignment{"space", pySingle(c.Space)},
			assignment{"seed", "seed"},
			assignment{"nprocs", "nprocs"},
			assignment{"dry_run", pyBool(c.DryRun)},
			assignment{"autofix", pyAutofix(c.AdvancedOptions.Autofix)},
			assignment{"high_val_thresh", pyFloat(c.AdvancedOptions.HighValThresh)},
			assignment{"accept_tol", pyFloat(c.AdvancedOptions.AcceptTol)},
			assignment{"remove_blocks", pyRemoveBlocks(c.AdvancedOptions.RemoveBlocks)},
			assignment{"verbose", pyBool(c.Verbose)},
		)

	b.blank().line(`print("Done!")`)
	return b.String()
}

// writeCovarianceLoading emits the block that loads every covariance file.
// Missing files are collected and reported before the perturbation starts
// instead of failing on the first one. The reader is picked by a "gendf"
// name heuristic.
func writeCovarianceLoading(b *pyBuilder, n int) {
	b.blank().comment("Load covariance matrices").
		line("covmatlist = []").
		line("missing_paths = []").
		line("cov_paths = [%s]", pyNames("cov", n)).
		blank().
		block(`for cov_path in cov_paths:
    if os.path.exists(cov_path):
        if cov_path.endswith('.gendf') or 'gendf' in cov_path.lower():
            cov = kika.read_njoy_covmat(cov_path)
        else:
            cov = kika.read_scale_covmat(cov_path)
    else:
        missing_paths.append(cov_path)
        cov = kika.cov.covmat.CovMat()
    covmatlist.append(cov)

if missing_paths:
    print("Warning: Following covariance matrix files are missing:")
    for path in missing_paths:
        print(f"  - {path}")
else:
    print("All covariance matrix files are present.")
`)
}

func renderENDF(c models.ENDFConfig) string {
	n := len(c.ENDFFiles)
	b := &pyBuilder{}

	b.line("import os").
		line("from kika.sampling.endf_perturbation import perturb_ENDF_files").
		blank()

	b.comment("ENDF file paths")
	for i, f := range c.ENDFFiles {
		b.line("endf_%d = %s", i+1, pySingle(f.DataFilePath))
	}
	b.blank().line("endf_files = %s", pyNameList("endf", n))

	hasCov := false
	for _, f := range c.ENDFFiles {
		if f.CovFilePath != "" {
			hasCov = true
			break
		}
	}
	b.blank()
	if hasCov {
		b.comment("MF34 covariance files")
		for i, f := range c.ENDFFiles {
			b.line("mf34_cov_%d = %s", i+1, pySingle(f.CovFilePath))
		}
		b.blank().line("mf34_cov_files = %s", pyNameList("mf34_cov", n))
	} else {
		b.comment("No separate MF34 covariance files - will use MF34 section from ENDF files").
			line("mf34_cov_files = None")
	}

	b.blank().comment("Sampling parameters").assignments(17,
		assignment{"mt_list", pyIntList(c.MTList)},
		assignment{"legendre_coeffs", pyIntList(c.LegendreCoeffs)},
		assignment{"num_samples", strconv.Itoa(c.NumSamples)},
		assignment{"output_dir", pyDouble(c.OutputDir)},
		assignment{"seed", pyOptionalInt(c.Seed)},
		assignment{"nprocs", strconv.Itoa(c.Nprocs)},
	)

	b.blank()
	if c.GenerateACE {
		b.comment("ACE generation options (via NJOY)").assignments(14,
			assignment{"generate_ace", "True"},
			assignment{"njoy_exe", pyDouble(c.NJOYExe)},
			assignment{"temperatures", pyFloatList(c.Temperatures)},
			assignment{"library_name", pyDouble(c.LibraryName)},
			assignment{"njoy_version", pyDouble(c.NJOYVersion)},
			assignment{"xsdir_file", fmt.Sprintf("%s if %s else None", pyDouble(c.XSDirFile), pyDouble(c.XSDirFile))},
		)
	} else {
		b.comment("ACE generation disabled").assignments(14,
			assignment{"generate_ace", "False"},
			assignment{"njoy_exe", "None"},
			assignment{"temperatures", "None"},
			assignment{"library_name", "None"},
			assignment{"njoy_version", pyDouble(models.DefaultNJOYVersion)},
			assignment{"xsdir_file", "None"},
		)
	}

	b.blank().comment("Run perturbation").
		line(`print(f"Generating {num_samples} perturbed ENDF files...")`).
		call("perturb_ENDF_files",
			assignment{"endf_files", "endf_files"},
			assignment{"mt_list", "mt_list"},
			assignment{"legendre_coeffs", "legendre_coeffs"},
			assignment{"num_samples", "num_samples"},
			assignment{"mf34_cov_files", "mf34_cov_files"},
			assignment{"space", pySingle(c.Space)},
			assignment{"decomposition_method", pySingle(c.DecompositionMethod)},
			assignment{"sampling_method", pySingle(c.SamplingMethod)},
			assignment{"output_dir", "output_dir"},
			assignment{"seed", "seed"},
			assignment{"nprocs", "nprocs"},
			assignment{"dry_run", pyBool(c.DryRun)},
			assignment{"verbose", pyBool(c.Verbose)},
			assignment{"generate_ace", "generate_ace"},
			assignment{"njoy_exe", "njoy_exe"},
			assignment{"temperatures", "temperatures"},
			assignment{"library_name", "library_name"},
			assignment{"njoy_version", "njoy_version"},
			assignment{"xsdir_file", "xsdir_file"},
		)

	b.blank().line(`print("Done!")`)
	return b.String()
}

func renderACEFromENDF(c models.ACEFromENDFConfig) string {
	b := &pyBuilder{}

	b.line("import os").
		line("from kika.sampling.ace_perturbation_separate import perturb_seprate_ACE_files").
		blank()

	b.comment("Covariance file paths")
	for i, f := range c.CovFiles {
		b.line("cov_%d = %s", i+1, pySingle(f))
	}
	b.blank().line("cov_files = %s", pyNameList("cov", len(c.CovFiles)))

	b.blank().comment("Configuration").assignments(13,
		assignment{"root_dir", pyDouble(c.RootDir)},
		assignment{"temperatures", pyFloatList(c.Temperatures)},
		assignment{"zaids", pyIntList(c.ZAIDs)},
		assignment{"mt_list", pyIntList(c.MTList)},
		assignment{"num_samples", strconv.Itoa(c.NumSamples)},
		assignment{"seed", pyOptionalInt(c.Seed)},
		assignment{"nprocs", strconv.Itoa(c.Nprocs)},
	)

	b.blank().comment("Run ACE perturbation on existing perturbed ENDF output structure").
		line(`print(f"Applying cross-section perturbations to {len(zaids)} isotope(s)...")`).
		call("perturb_seprate_ACE_files",
			assignment{"root_dir", "root_dir"},
			assignment{"temperatures", "temperatures"},
			assignment{"zaids", "zaids"},
			assignment{"cov_files", "cov_files"},
			assignment{"mt_list", "mt_list"},
			assignment{"num_samples", "num_samples"},
			assignment{"space", pySingle(c.Space)},
			assignment{"decomposition_method", pySingle(c.DecompositionMethod)},
			assignment{"sampling_method", pySingle(c.SamplingMethod)},
			assignment{"seed", "seed"},
			assignment{"nprocs", "nprocs"},
			assignment{"dry_run", pyBool(c.DryRun)},
			assignment{"autofix", pyAutofix(c.AdvancedOptions.Autofix)},
			assignment{"high_val_thresh", pyFloat(c.AdvancedOptions.HighValThresh)},
			assignment{"accept_tol", pyFloat(c.AdvancedOptions.AcceptTol)},
			assignment{"remove_blocks", pyRemoveBlocks(c.AdvancedOptions.RemoveBlocks)},
			assignment{"verbose", pyBool(c.Verbose)},
		)

	b.blank().line(`print("Done!")`)
	return b.String()
}
