package cmd

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/viper"

	"github.com/kika-project/kika-sampling/pkg/client"
	"github.com/kika-project/kika-sampling/pkg/config"
	"github.com/kika-project/kika-sampling/pkg/jobs"
	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/utils"
)

// connect resolves the target environment, builds a client and checks the
// service is reachable.
func connect(ctx context.Context) (*client.Kika, error) {
	env, apiKey, err := selectEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to select environment: %w", err)
	}

	kikaClient, err := client.NewKikaClient(env.URL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create KIKA client: %w", err)
	}

	logger.Networkf("Testing connection to %s (%s)...", env.Name, kikaClient.BaseURL())
	if err := kikaClient.ValidateConnection(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to KIKA service: %w", err)
	}
	logger.Success("Successfully connected to KIKA service")
	return kikaClient, nil
}

func selectEnvironment() (*config.Environment, string, error) {
	apiKey := viper.GetString("api-key")

	// Check if URL is provided via flag, config or KIKA_URL
	if url := viper.GetString("url"); url != "" {
		return &config.Environment{
			Name: "Custom",
			URL:  url,
		}, apiKey, nil
	}

	// Load environment configurations
	envConfig, err := config.LoadEnvironments()
	if err != nil {
		return nil, "", err
	}

	// Check if environment is specified via flag
	if name := viper.GetString("env"); name != "" {
		env, ok := envConfig.Find(name)
		if !ok {
			return nil, "", fmt.Errorf("environment %s not found", name)
		}
		return env, keyFor(env, apiKey), nil
	}

	// A single environment or a stored selection needs no prompt
	if len(envConfig.Environments) == 1 || envConfig.Selected != "" {
		if env, ok := envConfig.Current(); ok {
			return env, keyFor(env, apiKey), nil
		}
	}

	// Interactive selection
	options := make([]string, len(envConfig.Environments)+1)
	for i, env := range envConfig.Environments {
		options[i] = env.Name
	}
	options[len(options)-1] = "Custom URL"

	var selected string
	prompt := &survey.Select{
		Message: "Select environment:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, "", err
	}

	// Handle custom URL
	if selected == "Custom URL" {
		var customURL string
		urlPrompt := &survey.Input{
			Message: "Enter KIKA service URL:",
			Default: "http://localhost:8000",
		}
		if err := survey.AskOne(urlPrompt, &customURL); err != nil {
			return nil, "", err
		}

		if apiKey == "" {
			keyPrompt := &survey.Password{
				Message: "Enter API key (optional):",
			}
			if err := survey.AskOne(keyPrompt, &apiKey); err != nil {
				return nil, "", err
			}
		}

		return &config.Environment{
			Name: "Custom",
			URL:  customURL,
		}, apiKey, nil
	}

	env, ok := envConfig.Find(selected)
	if !ok {
		return nil, "", fmt.Errorf("environment not found")
	}
	return env, keyFor(env, apiKey), nil
}

// keyFor prefers an explicit key over the environment's key variable.
func keyFor(env *config.Environment, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return client.GetAPIKey(env.APIKey)
}

// loadJob reads the job file given as the first argument, or builds a job
// interactively when there is none.
func loadJob(args []string) (models.Configuration, error) {
	if len(args) > 0 {
		cfg, err := config.LoadJobFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load job: %w", err)
		}
		return cfg, nil
	}

	kind, err := selectKind("")
	if err != nil {
		return nil, err
	}
	return utils.PromptForJob(kind)
}

func selectKind(name string) (jobs.Kind, error) {
	if name != "" {
		return jobs.DefaultRegistry.Get(name)
	}

	kinds := jobs.DefaultRegistry.List()
	if len(kinds) == 0 {
		return jobs.Kind{}, fmt.Errorf("no job kinds registered")
	}

	// Build options for selection
	options := make([]string, len(kinds))
	descriptions := make(map[string]string)
	for i, kind := range kinds {
		options[i] = kind.Name
		descriptions[kind.Name] = kind.Description
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select job type:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return jobs.Kind{}, err
	}

	return jobs.DefaultRegistry.Get(selected)
}
