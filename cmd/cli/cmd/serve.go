package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/client"
	"github.com/kika-project/kika-sampling/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sampling API server",
	Long: `Run a KIKA sampling API server. It validates jobs, renders scripts and
streams simulated dry runs, which makes it useful as a local stand-in for a
processing service.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func init() {
	serveCmd.Flags().String("addr", ":8000", "address to listen on")
	serveCmd.Flags().Duration("step-delay", server.DefaultStepDelay, "pause between dry-run phases")
	serveCmd.Flags().Duration("file-delay", server.DefaultFileDelay, "pause after each dry-run file")
	serveCmd.Flags().String("api-key-env", "", "environment variable holding the API key clients must send")
}

func serve(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	stepDelay, _ := cmd.Flags().GetDuration("step-delay")
	fileDelay, _ := cmd.Flags().GetDuration("file-delay")
	keyEnv, _ := cmd.Flags().GetString("api-key-env")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Version:   Version,
		APIKey:    client.GetAPIKey(keyEnv),
		StepDelay: stepDelay,
		FileDelay: fileDelay,
	})
	return srv.Run(ctx, addr)
}
