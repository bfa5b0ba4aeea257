package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/config"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage KIKA service environments",
	Long:  `Manage the KIKA processing service environments the CLI can connect to`,
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured environments",
	RunE:  listEnvironments,
}

var envAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new environment",
	RunE:  addEnvironment,
}

var envRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an environment",
	RunE:  removeEnvironment,
}

var envUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Select the default environment",
	Args:  cobra.ExactArgs(1),
	RunE:  useEnvironment,
}

func init() {
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envAddCmd)
	envCmd.AddCommand(envRemoveCmd)
	envCmd.AddCommand(envUseCmd)
}

func listEnvironments(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	if len(cfg.Environments) == 0 {
		fmt.Println("No environments configured")
		return nil
	}

	current, _ := cfg.Current()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "\tNAME\tURL\tAUTHENTICATION")
	_, _ = fmt.Fprintln(w, "\t----\t---\t--------------")

	for _, env := range cfg.Environments {
		marker := ""
		if current != nil && current.Name == env.Name {
			marker = "*"
		}
		authInfo := "None"
		if env.APIKey != "" {
			authInfo = fmt.Sprintf("API Key (%s)", env.APIKey)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, env.Name, env.URL, authInfo)
	}

	return w.Flush()
}

func addEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	var env config.Environment

	namePrompt := &survey.Input{
		Message: "Environment name:",
	}
	if err := survey.AskOne(namePrompt, &env.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	if _, exists := cfg.Find(env.Name); exists {
		return fmt.Errorf("environment %s already exists", env.Name)
	}

	urlPrompt := &survey.Input{
		Message: "KIKA service URL:",
		Default: "http://localhost:8000",
	}
	if err := survey.AskOne(urlPrompt, &env.URL, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var useKey bool
	keyConfirm := &survey.Confirm{
		Message: "Does the service require an API key?",
		Default: false,
	}
	if err := survey.AskOne(keyConfirm, &useKey); err != nil {
		return err
	}

	if useKey {
		apiKeyPrompt := &survey.Input{
			Message: "API key environment variable:",
			Help:    "Name of the environment variable that contains the API key",
			Default: "KIKA_API_KEY",
		}
		if err := survey.AskOne(apiKeyPrompt, &env.APIKey, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	cfg.Add(env)

	if err := config.SaveEnvironments(cfg); err != nil {
		return fmt.Errorf("failed to save environments: %w", err)
	}

	fmt.Printf("Environment %s added successfully\n", env.Name)
	return nil
}

func removeEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	if len(cfg.Environments) == 0 {
		fmt.Println("No environments to remove")
		return nil
	}

	names := make([]string, len(cfg.Environments))
	for i, env := range cfg.Environments {
		names[i] = env.Name
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select environment to remove:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	cfg.Remove(selected)

	if err := config.SaveEnvironments(cfg); err != nil {
		return fmt.Errorf("failed to save environments: %w", err)
	}

	fmt.Printf("Environment %s removed successfully\n", selected)
	return nil
}

func useEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	env, ok := cfg.Find(args[0])
	if !ok {
		return fmt.Errorf("environment %s not found", args[0])
	}
	cfg.Selected = env.Name

	if err := config.SaveEnvironments(cfg); err != nil {
		return fmt.Errorf("failed to save environments: %w", err)
	}

	fmt.Printf("Using environment %s\n", env.Name)
	return nil
}
