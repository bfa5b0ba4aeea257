package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// LoadJobFile reads a job definition. Files ending in .json are decoded as
// JSON, everything else as YAML. Fields the file omits keep their defaults.
func LoadJobFile(path string) (models.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	cfg, err := DecodeJob(data, isJSON(path, data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeJob decodes a job document in JSON or YAML.
func DecodeJob(data []byte, asJSON bool) (models.Configuration, error) {
	if asJSON {
		return models.UnmarshalConfiguration(data)
	}
	return decodeYAMLJob(data)
}

func decodeYAMLJob(data []byte) (models.Configuration, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, models.ErrMissingType
	}
	root := doc.Content[0]

	var head struct {
		Type string `yaml:"type"`
	}
	if err := root.Decode(&head); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	cfg, err := models.NewDefault(models.JobType(head.Type))
	if err != nil {
		return nil, err
	}

	switch c := cfg.(type) {
	case models.ACEConfig:
		err = root.Decode(&c)
		cfg = c
	case models.ENDFConfig:
		err = root.Decode(&c)
		cfg = c
	case models.ACEFromENDFConfig:
		err = root.Decode(&c)
		cfg = c
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s job: %w", head.Type, err)
	}
	return cfg, nil
}

// SaveJobFile writes cfg to path, as JSON for .json files and YAML
// otherwise. The type discriminant is always written first.
func SaveJobFile(path string, cfg models.Configuration) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = encodeYAMLJob(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create job directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}

func encodeYAMLJob(cfg models.Configuration) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, err
	}
	typeKey := &yaml.Node{Kind: yaml.ScalarNode, Value: "type"}
	typeVal := &yaml.Node{Kind: yaml.ScalarNode, Value: string(cfg.Type())}
	node.Content = append([]*yaml.Node{typeKey, typeVal}, node.Content...)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isJSON(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
