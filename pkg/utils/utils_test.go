package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kika-project/kika-sampling/pkg/config"
	"github.com/kika-project/kika-sampling/pkg/jobs"
	"github.com/kika-project/kika-sampling/pkg/models"
)

func TestPromptForJobFromEnvironment(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	t.Setenv("KIKA_ACE_FILES", "/data/fe56.ace,/data/fe56.gendf; /data/u235.ace")
	t.Setenv("KIKA_NUM_SAMPLES", "250")
	t.Setenv("KIKA_MT_LIST", "2, 102")
	t.Setenv("KIKA_ADVANCED_OPTIONS_AUTOFIX", "medium")

	kind, err := jobs.DefaultRegistry.Get("ace")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := PromptForJob(kind)
	if err != nil {
		t.Fatalf("PromptForJob: %v", err)
	}

	ace, ok := cfg.(models.ACEConfig)
	if !ok {
		t.Fatalf("expected ACEConfig, got %T", cfg)
	}
	wantFiles := []models.FileEntry{
		{DataFilePath: "/data/fe56.ace", CovFilePath: "/data/fe56.gendf"},
		{DataFilePath: "/data/u235.ace"},
	}
	if !reflect.DeepEqual(ace.ACEFiles, wantFiles) {
		t.Errorf("ace files: got %+v", ace.ACEFiles)
	}
	if ace.NumSamples != 250 {
		t.Errorf("expected 250 samples, got %d", ace.NumSamples)
	}
	if !reflect.DeepEqual(ace.MTList, []int{2, 102}) {
		t.Errorf("mt list: got %v", ace.MTList)
	}
	if ace.AdvancedOptions.Autofix != models.AutofixMedium {
		t.Errorf("autofix: got %s", ace.AdvancedOptions.Autofix)
	}
	if ace.SamplingMethod != models.DefaultSamplingMethod || ace.Seed == nil || *ace.Seed != models.DefaultSeed {
		t.Errorf("defaults should be kept: %+v", ace.Common)
	}
}

func TestPromptForJobRequiredMissing(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")

	kind, err := jobs.DefaultRegistry.Get("ace-from-endf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := PromptForJob(kind); err == nil {
		t.Fatal("expected an error for missing root_dir")
	}
}

func TestPromptForJobSkipsDisabledSections(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	t.Setenv("KIKA_ENDF_FILES", "/e/fe56.endf")

	kind, err := jobs.DefaultRegistry.Get("endf")
	if err != nil {
		t.Fatal(err)
	}
	// njoy_exe is required but only when generate_ace is on.
	cfg, err := PromptForJob(kind)
	if err != nil {
		t.Fatalf("PromptForJob: %v", err)
	}
	if cfg.Base().NumSamples != models.DefaultNumSamples {
		t.Errorf("expected default sample count, got %d", cfg.Base().NumSamples)
	}

	t.Setenv("KIKA_GENERATE_ACE", "true")
	if _, err := PromptForJob(kind); err == nil {
		t.Fatal("expected an error for missing njoy_exe once ACE generation is enabled")
	}
}

func TestParseEnvValue(t *testing.T) {
	tests := []struct {
		param jobs.Parameter
		value string
		want  interface{}
	}{
		{jobs.Parameter{Name: "n", Type: jobs.ParamInteger}, " 7 ", 7},
		{jobs.Parameter{Name: "f", Type: jobs.ParamFloat}, "1e-3", 0.001},
		{jobs.Parameter{Name: "b", Type: jobs.ParamBoolean}, "true", true},
		{jobs.Parameter{Name: "temps", Type: jobs.ParamFloatList}, "293.6,600", []float64{293.6, 600}},
		{jobs.Parameter{Name: "covs", Type: jobs.ParamStringList}, "a.gendf, b.gendf", []string{"a.gendf", "b.gendf"}},
		{jobs.Parameter{Name: "zaids", Type: jobs.ParamIntList}, "", []int{}},
	}
	for _, tt := range tests {
		got, err := parseEnvValue(tt.value, tt.param)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.param.Name, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %#v, want %#v", tt.param.Name, got, tt.want)
		}
	}

	if _, err := parseEnvValue("1,x", jobs.Parameter{Type: jobs.ParamIntList}); err == nil {
		t.Error("expected error for non-integer list item")
	}
	if _, err := parseEnvValue(",cov-only", jobs.Parameter{Type: jobs.ParamFiles, Description: "ACE file"}); err == nil {
		t.Error("expected error for file pair without a data path")
	}
}

func TestParseIntegerOptional(t *testing.T) {
	optional := jobs.Parameter{Name: "seed", Type: jobs.ParamInteger}
	required := jobs.Parameter{Name: "nprocs", Type: jobs.ParamInteger, Required: true, Min: 1}

	for _, answer := range []string{"", "  ", "none", "None"} {
		got, err := parseInteger(answer, optional)
		if err != nil || got != nil {
			t.Errorf("parseInteger(%q) = %v, %v; want nil, nil", answer, got, err)
		}
	}
	if got, err := parseInteger("7", optional); err != nil || got != 7 {
		t.Errorf("parseInteger(7) = %v, %v", got, err)
	}
	if _, err := parseInteger("", required); err == nil {
		t.Error("required integer must not accept an empty answer")
	}
	if _, err := parseInteger("0", required); err == nil {
		t.Error("expected range error below the minimum")
	}
}

func TestPromptForJobClearsSeed(t *testing.T) {
	t.Setenv(SkipPromptsEnv, "true")
	t.Setenv("KIKA_ACE_FILES", "/data/fe56.ace")
	t.Setenv("KIKA_SEED", "none")

	kind, err := jobs.DefaultRegistry.Get("ace")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := PromptForJob(kind)
	if err != nil {
		t.Fatalf("PromptForJob: %v", err)
	}
	if seed := cfg.Base().Seed; seed != nil {
		t.Errorf("expected unset seed, got %d", *seed)
	}
}

func TestEnvKey(t *testing.T) {
	if got := EnvKey(jobs.Parameter{Name: "advanced_options.accept_tol"}); got != "KIKA_ADVANCED_OPTIONS_ACCEPT_TOL" {
		t.Errorf("unexpected env key %s", got)
	}
}

func TestDiscoverJobs(t *testing.T) {
	dir := t.TempDir()

	ace := models.NewACEConfig()
	ace.ACEFiles = []models.FileEntry{{DataFilePath: "/a.ace", CovFilePath: "/a.cov"}}
	if err := config.SaveJobFile(filepath.Join(dir, "b", "ace.yaml"), ace); err != nil {
		t.Fatal(err)
	}
	if err := config.SaveJobFile(filepath.Join(dir, "a", "endf.json"), models.NewENDFConfig()); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "environments.yaml"), "environments: []\n")
	writeFile(t, filepath.Join(dir, "broken.yaml"), "type: pendf\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "type: ace\n")
	if err := config.SaveJobFile(filepath.Join(dir, ".hidden", "ace.yaml"), ace); err != nil {
		t.Fatal(err)
	}

	found, err := DiscoverJobs(dir)
	if err != nil {
		t.Fatalf("DiscoverJobs: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %+v", len(found), found)
	}
	if found[0].Config.Type() != models.JobTypeENDF || found[1].Config.Type() != models.JobTypeACE {
		t.Errorf("unexpected order: %s, %s", found[0].Path, found[1].Path)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
