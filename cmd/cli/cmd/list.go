package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kika-project/kika-sampling/pkg/jobs"
	"github.com/kika-project/kika-sampling/pkg/sampling"
	"github.com/kika-project/kika-sampling/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List job types or job files",
	Long: `List the supported job types. With --dir, list the job files found
under a directory instead.`,
	Args: cobra.NoArgs,
	RunE: listJobs,
}

func init() {
	listCmd.Flags().StringP("dir", "d", "", "directory to scan for job files")
}

func listJobs(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return listJobFiles(dir)
	}

	// Create tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tNAME\tSCRIPT\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t----\t------\t-----------")

	for _, kind := range jobs.DefaultRegistry.List() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			kind.Type,
			kind.Name,
			kind.Filename,
			kind.Description,
		)
	}

	return w.Flush()
}

func listJobFiles(dir string) error {
	found, err := utils.DiscoverJobs(dir)
	if err != nil {
		return fmt.Errorf("failed to discover jobs: %w", err)
	}

	if len(found) == 0 {
		fmt.Println("No job files found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tTYPE\tFILES\tSAMPLES\tVALID\tESTIMATE")
	_, _ = fmt.Fprintln(w, "----\t----\t-----\t-------\t-----\t--------")

	for _, info := range found {
		result := sampling.ValidateConfig(info.Config)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\n",
			info.Path,
			info.Config.Type(),
			info.Config.FileCount(),
			info.Config.Base().NumSamples,
			result.Valid,
			sampling.EstimateRuntime(info.Config),
		)
	}

	return w.Flush()
}
