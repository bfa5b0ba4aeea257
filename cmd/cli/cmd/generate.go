package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

var generateCmd = &cobra.Command{
	Use:   "generate [FILE]",
	Short: "Generate the processing script for a job",
	Long: `Validate a sampling job and render it into a self-contained Python script
for the KIKA library. The script is written to --out and can also be copied
to the clipboard.`,
	Args: cobra.MaximumNArgs(1),
	RunE: generateJob,
}

func init() {
	generateCmd.Flags().StringP("out", "o", ".", "directory to write the script to")
	generateCmd.Flags().Bool("copy", false, "copy the script to the clipboard")
	generateCmd.Flags().Bool("remote", false, "validate and render through the processing service")
	generateCmd.Flags().Bool("stdout", false, "print the script instead of writing it")
}

func generateJob(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("job is invalid, no script generated")
	}

	script, err := render(cmd, cfg)
	if err != nil {
		return err
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		fmt.Print(script.Script)
		return nil
	}

	out, _ := cmd.Flags().GetString("out")
	path, err := sampling.NewExporter(out).SaveScript(script)
	if err != nil {
		return fmt.Errorf("failed to save script: %w", err)
	}
	logger.Successf("Script saved to %s", path)
	logger.LogKeyValue("Estimated runtime", script.EstimatedRuntime)

	if copyIt, _ := cmd.Flags().GetBool("copy"); copyIt {
		if sampling.CopyScriptToClipboard(script) {
			logger.Success("Script copied to clipboard")
		} else {
			logger.Warn("Could not copy script to clipboard")
		}
	}
	return nil
}

func render(cmd *cobra.Command, cfg models.Configuration) (models.GeneratedScript, error) {
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		kikaClient, err := connect(cmd.Context())
		if err != nil {
			return models.GeneratedScript{}, err
		}
		script, err := kikaClient.GenerateScript(cmd.Context(), cfg)
		if err != nil {
			return models.GeneratedScript{}, fmt.Errorf("failed to generate script: %w", err)
		}
		if script.EstimatedRuntime == "" {
			script.EstimatedRuntime = sampling.EstimateRuntime(cfg)
		}
		return *script, nil
	}

	return sampling.GenerateScript(cfg), nil
}
