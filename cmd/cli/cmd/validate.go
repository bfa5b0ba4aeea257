package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

var validateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Validate a sampling job",
	Long: `Validate a sampling job file. With --remote the processing service also
checks the execution host, falling back to local checks when it cannot be
reached.`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateJob,
}

func init() {
	validateCmd.Flags().Bool("remote", false, "validate against the processing service")
}

func validateJob(cmd *cobra.Command, args []string) error {
	cfg, err := loadJob(args)
	if err != nil {
		return err
	}

	result, err := validate(cmd, cfg)
	if err != nil {
		return err
	}

	reportValidation(result)
	if !result.Valid {
		return fmt.Errorf("job is invalid")
	}
	logger.Success("Job is valid")
	return nil
}

// validate runs local or remote validation depending on --remote.
func validate(cmd *cobra.Command, cfg models.Configuration) (models.ValidationResult, error) {
	remote, _ := cmd.Flags().GetBool("remote")
	if !remote {
		return sampling.ValidateConfig(cfg), nil
	}

	kikaClient, err := connect(cmd.Context())
	if err != nil {
		return models.ValidationResult{}, err
	}
	return sampling.ValidateConfigRemote(cmd.Context(), kikaClient, cfg), nil
}

func reportValidation(result models.ValidationResult) {
	for _, msg := range result.Errors {
		logger.Error(msg)
	}
	for _, msg := range result.Warnings {
		logger.Warn(msg)
	}
}
