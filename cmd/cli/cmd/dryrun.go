package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/logger"
	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run [FILE]",
	Short: "Run a job in dry-run mode on the processing service",
	Long: `Submit a sampling job to the processing service with the dry-run flag set
and follow its progress. Press Ctrl+C to stop following the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: dryRunJob,
}

func init() {
	dryRunCmd.Flags().Duration("idle-timeout", 0, "abort when the service sends nothing for this long (0 waits forever)")
}

func dryRunJob(cmd *cobra.Command, args []string) error {
	cfg, err := loadJob(args)
	if err != nil {
		return err
	}

	result := sampling.ValidateConfig(cfg)
	reportValidation(result)
	if !result.Valid {
		return errors.New("job is invalid, dry run not started")
	}

	// Set up signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kikaClient, err := connect(ctx)
	if err != nil {
		return err
	}

	orchestrator := sampling.NewOrchestrator(kikaClient)
	orchestrator.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")

	logger.LogSection("Dry Run")
	bar := logger.NewProgressBar(nil, "Progress")

	var failure string
	orchestrator.RunDryRun(ctx, cfg, sampling.Handlers{
		OnLog: func(entry models.LogEntry) {
			// Keep the bar on its own line below remote output
			if bar.Percent() > 0 {
				bar.Finish()
			}
			logger.Remote(entry.Timestamp, string(entry.Level), entry.Message)
		},
		OnProgress: bar.Set,
		OnComplete: func() {
			bar.Finish()
			logger.Success("Dry run completed")
		},
		OnError: func(message string) {
			bar.Finish()
			failure = message
		},
	})

	if failure != "" {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Warn("Dry run interrupted")
			return nil
		}
		return errors.New(failure)
	}
	return nil
}
