package sampling

import (
	"fmt"
	"math"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// Empirical throughput in file-samples per minute per worker. Dry runs skip
// the physics calls and run two orders of magnitude faster.
const (
	dryRunOpsPerMinute = 1000.0
	realOpsPerMinute   = 10.0
)

// EstimateRuntime returns an advisory, human-readable runtime estimate for
// cfg. It is informational only and never used for scheduling or timeouts.
func EstimateRuntime(cfg models.Configuration) string {
	base := cfg.Base()
	ops := float64(cfg.FileCount() * base.NumSamples)

	throughput := realOpsPerMinute
	if base.DryRun {
		throughput = dryRunOpsPerMinute
	}
	nprocs := base.Nprocs
	if nprocs < 1 {
		nprocs = 1
	}

	return formatMinutes(ops / throughput / float64(nprocs))
}

func formatMinutes(minutes float64) string {
	if minutes < 1 {
		return "< 1 minute"
	}
	total := int(math.Round(minutes))
	switch {
	case total == 1:
		return "~1 minute"
	case total < 60:
		return fmt.Sprintf("~%d minutes", total)
	}
	return fmt.Sprintf("~%dh %dm", total/60, total%60)
}
