package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kika-project/kika-sampling/pkg/models"
)

func TestLoadEnvironmentsMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadEnvironmentsFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env, ok := cfg.Current()
	if !ok || env.Name != "Local" || env.URL != "http://localhost:8000" {
		t.Fatalf("unexpected default environment: %+v", env)
	}
}

func TestEnvironmentsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "environments.yaml")

	cfg := getDefaultConfig()
	cfg.Add(Environment{Name: "Cluster", URL: "https://kika.example.org", APIKey: "KIKA_CLUSTER_KEY"})
	cfg.Add(Environment{Name: "local", URL: "http://127.0.0.1:9000"})
	cfg.Selected = "cluster"

	if err := SaveEnvironmentsToFile(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadEnvironmentsFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, loaded)
	}
	if len(loaded.Environments) != 2 {
		t.Fatalf("Add should replace an environment with the same name, got %d", len(loaded.Environments))
	}
	if env, _ := loaded.Current(); env.Name != "Cluster" {
		t.Errorf("expected selected environment Cluster, got %s", env.Name)
	}

	if !loaded.Remove("CLUSTER") || loaded.Selected != "" {
		t.Errorf("Remove should drop the environment and clear the selection")
	}
	if loaded.Remove("missing") {
		t.Errorf("Remove of unknown environment should report false")
	}
}

func TestLoadEnvironmentsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments.yaml")
	if err := os.WriteFile(path, []byte("environments: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEnvironmentsFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadJobFileYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	doc := `type: ace
num_samples: 250
mt_list: [2, 102]
ace_files:
  - data_file_path: /data/fe56.ace
    cov_file_path: /data/fe56.gendf
advanced_options:
  autofix: soft
  remove_blocks:
    26056: [[0, 3]]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadJobFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ace, ok := cfg.(models.ACEConfig)
	if !ok {
		t.Fatalf("expected ACEConfig, got %T", cfg)
	}
	if ace.NumSamples != 250 || !reflect.DeepEqual(ace.MTList, []int{2, 102}) {
		t.Errorf("explicit fields not decoded: %+v", ace.Common)
	}
	if ace.SamplingMethod != models.DefaultSamplingMethod || ace.Nprocs != models.DefaultNprocs {
		t.Errorf("defaults not kept: %+v", ace.Common)
	}
	if ace.Seed == nil || *ace.Seed != models.DefaultSeed {
		t.Errorf("expected default seed, got %v", ace.Seed)
	}
	if ace.AdvancedOptions.Autofix != models.AutofixSoft || ace.AdvancedOptions.HighValThresh != models.DefaultHighValThresh {
		t.Errorf("advanced options: %+v", ace.AdvancedOptions)
	}
	want := map[int][]models.BlockRange{26056: {{0, 3}}}
	if !reflect.DeepEqual(ace.AdvancedOptions.RemoveBlocks, want) {
		t.Errorf("remove_blocks: got %v", ace.AdvancedOptions.RemoveBlocks)
	}
}

func TestJobFileRoundTrip(t *testing.T) {
	endf := models.NewENDFConfig()
	endf.ENDFFiles = []models.FileEntry{{ID: "u235", DataFilePath: "/e/u235.endf"}}
	endf.GenerateACE = true
	endf.NJOYExe = "/opt/njoy"
	endf.Seed = nil

	fromENDF := models.NewACEFromENDFConfig()
	fromENDF.RootDir = "/out"
	fromENDF.ZAIDs = []int{92235}
	fromENDF.Temperatures = []float64{300}
	fromENDF.CovFiles = []string{"/cov/u235.gendf"}

	for _, name := range []string{"job.yaml", "job.json", "nested/job.yml"} {
		for _, cfg := range []models.Configuration{endf, fromENDF} {
			path := filepath.Join(t.TempDir(), name)
			if err := SaveJobFile(path, cfg); err != nil {
				t.Fatalf("%s: save: %v", name, err)
			}
			loaded, err := LoadJobFile(path)
			if err != nil {
				t.Fatalf("%s: load: %v", name, err)
			}
			if !reflect.DeepEqual(cfg, loaded) {
				t.Errorf("%s: round trip mismatch:\nsaved  %+v\nloaded %+v", name, cfg, loaded)
			}
		}
	}
}

func TestDecodeJobErrors(t *testing.T) {
	var unknown *models.UnknownTypeError

	if _, err := DecodeJob([]byte("type: foo\n"), false); !errors.As(err, &unknown) || unknown.Type != "foo" {
		t.Errorf("expected UnknownTypeError for foo, got %v", err)
	}
	if _, err := DecodeJob([]byte("num_samples: 3\n"), false); !errors.Is(err, models.ErrMissingType) {
		t.Errorf("expected ErrMissingType, got %v", err)
	}
	if _, err := DecodeJob([]byte(""), false); !errors.Is(err, models.ErrMissingType) {
		t.Errorf("expected ErrMissingType for empty document, got %v", err)
	}
	if _, err := DecodeJob([]byte(`{"type":"endf","num_samples":"many"}`), true); err == nil {
		t.Error("expected decode error for wrong field type")
	}
}

func TestJSONJobFileGetsFileIDs(t *testing.T) {
	ace := models.NewACEConfig()
	ace.ACEFiles = []models.FileEntry{{DataFilePath: "/a/fe56.ace", CovFilePath: "/a/fe56.cov"}}

	path := filepath.Join(t.TempDir(), "job.json")
	if err := SaveJobFile(path, ace); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadJobFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.(models.ACEConfig).ACEFiles[0].ID; got != "file-1" {
		t.Errorf("expected positional id file-1, got %q", got)
	}

	cfg, err := DecodeJob([]byte("type: ace\nace_files:\n  - data_file_path: /a/fe56.ace\n"), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if missing := models.MissingFileIDs(cfg); len(missing) != 1 {
		t.Fatalf("YAML job without ids should report one missing id, got %v", missing)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := models.UnmarshalConfiguration(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if missing := models.MissingFileIDs(decoded); len(missing) != 0 {
		t.Errorf("encoded job should carry every file id, missing %v", missing)
	}
}
