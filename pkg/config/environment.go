package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DirName is the per-user settings directory under $HOME.
const DirName = ".kika-sampling"

const environmentsFile = "environments.yaml"

// Environment represents a KIKA processing-service environment
type Environment struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	// APIKey names the environment variable holding the API key.
	APIKey string `yaml:"api_key,omitempty"`
}

// Config holds the environment configurations
type Config struct {
	Environments []Environment `yaml:"environments"`
	Selected     string        `yaml:"selected,omitempty"`
}

// Dir returns the settings directory, $HOME/.kika-sampling
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName), nil
}

// EnvironmentsPath returns the default environments file location
func EnvironmentsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, environmentsFile), nil
}

// LoadEnvironments loads environment configurations from the default location
func LoadEnvironments() (*Config, error) {
	configPath, err := EnvironmentsPath()
	if err != nil {
		return nil, err
	}
	return LoadEnvironmentsFromFile(configPath)
}

// LoadEnvironmentsFromFile loads environment configurations from a specific file
func LoadEnvironmentsFromFile(path string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveEnvironments saves the environment configuration
func SaveEnvironments(config *Config) error {
	configPath, err := EnvironmentsPath()
	if err != nil {
		return err
	}
	return SaveEnvironmentsToFile(config, configPath)
}

// SaveEnvironmentsToFile saves the environment configuration to a specific file
func SaveEnvironmentsToFile(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Find returns the environment with the given name, ignoring case
func (c *Config) Find(name string) (*Environment, bool) {
	for i := range c.Environments {
		if strings.EqualFold(c.Environments[i].Name, name) {
			return &c.Environments[i], true
		}
	}
	return nil, false
}

// Current returns the selected environment, or the first one when nothing
// is selected
func (c *Config) Current() (*Environment, bool) {
	if c.Selected != "" {
		if env, ok := c.Find(c.Selected); ok {
			return env, true
		}
	}
	if len(c.Environments) == 0 {
		return nil, false
	}
	return &c.Environments[0], true
}

// Add inserts env, replacing an existing environment of the same name
func (c *Config) Add(env Environment) {
	if existing, ok := c.Find(env.Name); ok {
		*existing = env
		return
	}
	c.Environments = append(c.Environments, env)
}

// Remove deletes the named environment and reports whether it existed
func (c *Config) Remove(name string) bool {
	for i, env := range c.Environments {
		if strings.EqualFold(env.Name, name) {
			c.Environments = append(c.Environments[:i], c.Environments[i+1:]...)
			if strings.EqualFold(c.Selected, name) {
				c.Selected = ""
			}
			return true
		}
	}
	return false
}

// getDefaultConfig returns a default configuration
func getDefaultConfig() *Config {
	return &Config{
		Environments: []Environment{
			{
				Name: "Local",
				URL:  "http://localhost:8000",
			},
		},
	}
}
