package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [FILE]",
	Short: "Estimate the runtime of a job",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadJob(args)
		if err != nil {
			return err
		}

		base := cfg.Base()
		logger.LogKeyValue("Type", cfg.Type())
		logger.LogKeyValue("Files", cfg.FileCount())
		logger.LogKeyValue("Samples", base.NumSamples)
		logger.LogKeyValue("Processes", base.Nprocs)
		logger.LogKeyValue("Estimated runtime", sampling.EstimateRuntime(cfg))
		return nil
	},
}
