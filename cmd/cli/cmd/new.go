package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/config"
	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/utils"
)

var newCmd = &cobra.Command{
	Use:   "new [TYPE]",
	Short: "Create a job file interactively",
	Long: `Create a sampling job file. TYPE is one of ace, endf or ace-from-endf;
when omitted you are asked to pick one. Set KIKA_SKIP_PROMPTS=true and the
KIKA_<FIELD> variables to build the job without prompting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: newJob,
}

func init() {
	newCmd.Flags().StringP("output", "o", "job.yaml", "job file to write (.yaml or .json)")
}

func newJob(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	kind, err := selectKind(name)
	if err != nil {
		return err
	}

	logger.LogSection(kind.Name)
	cfg, err := utils.PromptForJob(kind)
	if err != nil {
		return fmt.Errorf("failed to build job: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := config.SaveJobFile(output, cfg); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}

	logger.Successf("Job written to %s", output)
	return nil
}
