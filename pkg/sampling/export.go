package sampling

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
)

// Exporter delivers generated scripts to the user, either as a file or on
// the system clipboard.
type Exporter struct {
	// Dir is where SaveScript writes. Empty means the working directory.
	Dir string

	WriteClipboard       func(text string) error
	ClipboardUnsupported func() bool
}

// NewExporter returns an exporter writing into dir and using the system
// clipboard.
func NewExporter(dir string) *Exporter {
	return &Exporter{
		Dir:                  dir,
		WriteClipboard:       clipboard.WriteAll,
		ClipboardUnsupported: func() bool { return clipboard.Unsupported },
	}
}

// SaveScript writes the script under its own filename and returns the path.
func (e *Exporter) SaveScript(s models.GeneratedScript) (string, error) {
	if s.Filename == "" {
		return "", fmt.Errorf("script has no filename")
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(s.Filename))
	if err := os.WriteFile(path, []byte(s.Script), 0644); err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}
	return path, nil
}

// DownloadScript saves the script and logs the outcome instead of returning it.
func (e *Exporter) DownloadScript(s models.GeneratedScript) {
	path, err := e.SaveScript(s)
	if err != nil {
		logger.Errorf("Failed to save %s: %v", s.Filename, err)
		return
	}
	logger.Successf("Saved script to %s", path)
}

// CopyScriptToClipboard places the script text on the clipboard and reports
// whether that worked. It never panics, even without a clipboard.
func (e *Exporter) CopyScriptToClipboard(s models.GeneratedScript) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Clipboard write panicked: %v", r)
			ok = false
		}
	}()

	if e.ClipboardUnsupported != nil && e.ClipboardUnsupported() {
		logger.Warn("No clipboard utility available on this system")
		return false
	}
	if e.WriteClipboard == nil {
		return false
	}
	if err := e.WriteClipboard(s.Script); err != nil {
		logger.Warnf("Failed to copy script to clipboard: %v", err)
		return false
	}
	return true
}

var defaultExporter = NewExporter("")

// SaveScript writes s into the working directory.
func SaveScript(s models.GeneratedScript) (string, error) {
	return defaultExporter.SaveScript(s)
}

// DownloadScript saves s into the working directory, logging failures.
func DownloadScript(s models.GeneratedScript) {
	defaultExporter.DownloadScript(s)
}

// CopyScriptToClipboard copies s to the system clipboard.
func CopyScriptToClipboard(s models.GeneratedScript) bool {
	return defaultExporter.CopyScriptToClipboard(s)
}
