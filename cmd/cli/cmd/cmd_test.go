package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/kika-project/kika-sampling/pkg/config"
	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		for _, key := range []string{"url", "env", "api-key"} {
			viper.Set(key, "")
		}
	})
}

func TestSelectEnvironmentPrefersURL(t *testing.T) {
	isolate(t)
	viper.Set("url", "http://kika.internal:9000")
	viper.Set("api-key", "secret")

	env, key, err := selectEnvironment()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Name != "Custom" || env.URL != "http://kika.internal:9000" || key != "secret" {
		t.Errorf("unexpected environment %+v key %q", env, key)
	}
}

func TestSelectEnvironmentByName(t *testing.T) {
	isolate(t)
	t.Setenv("KIKA_TEST_KEY", "from-env")

	cfg, err := config.LoadEnvironments()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Add(config.Environment{Name: "Cluster", URL: "https://kika.example.org", APIKey: "KIKA_TEST_KEY"})
	if err := config.SaveEnvironments(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	viper.Set("env", "cluster")
	env, key, err := selectEnvironment()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Name != "Cluster" || key != "from-env" {
		t.Errorf("unexpected environment %+v key %q", env, key)
	}

	viper.Set("env", "missing")
	if _, _, err := selectEnvironment(); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestKeyForPrefersExplicitKey(t *testing.T) {
	t.Setenv("KIKA_TEST_KEY", "from-env")
	env := &config.Environment{APIKey: "KIKA_TEST_KEY"}

	if got := keyFor(env, "flag"); got != "flag" {
		t.Errorf("expected explicit key, got %q", got)
	}
	if got := keyFor(env, ""); got != "from-env" {
		t.Errorf("expected key from environment variable, got %q", got)
	}
}

func TestGenerateWritesScript(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	job := models.NewACEConfig()
	job.ACEFiles = []models.FileEntry{{DataFilePath: "/data/fe56.ace", CovFilePath: "/data/fe56.gendf"}}
	jobPath := filepath.Join(dir, "job.yaml")
	if err := config.SaveJobFile(jobPath, job); err != nil {
		t.Fatalf("save job: %v", err)
	}

	out := filepath.Join(dir, "scripts")
	rootCmd.SetArgs([]string{"generate", jobPath, "--out", out, "--no-color"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, sampling.ACEScriptFilename))
	if err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if !strings.Contains(string(data), "/data/fe56.ace") {
		t.Errorf("script does not reference the ACE file")
	}
}
