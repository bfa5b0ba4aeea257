package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kika-project/kika-sampling/pkg/config"
	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
)

// JobInfo describes a job file found on disk
type JobInfo struct {
	Path   string
	Config models.Configuration
}

// DiscoverJobs finds all job files (YAML or JSON) under dir. Documents
// without a type field are not jobs and are skipped silently; broken job
// files are reported and skipped.
func DiscoverJobs(dir string) ([]JobInfo, error) {
	var found []JobInfo

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
		default:
			return nil
		}

		cfg, err := config.LoadJobFile(path)
		if errors.Is(err, models.ErrMissingType) {
			return nil
		}
		if err != nil {
			// Log error but continue scanning
			logger.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		found = append(found, JobInfo{Path: path, Config: cfg})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for jobs: %w", err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found, nil
}
