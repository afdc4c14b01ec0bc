// clean.go implements the "clean-traces" command for pruning trace archives.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/berth-dev/godog-playwright/internal/cleanup"
	"github.com/berth-dev/godog-playwright/pkg/world"
)

// defaultMaxAgeDays is how long trace archives are kept by default.
const defaultMaxAgeDays = 30

func newCleanTracesCmd() *cobra.Command {
	var (
		dir        string
		keep       int
		maxAgeDays int
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "clean-traces",
		Short: "Remove old Playwright trace archives",
		Long: `Remove old trace archives from traces/.

By default, removes traces recorded more than --max-age-days ago (default 30).
Use --keep to keep only the N most recent traces instead.
Use --dry-run to preview what would be removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pruned []string
			var err error

			if keep > 0 {
				pruned, err = cleanup.PruneKeepRecent(dir, keep, dryRun)
			} else {
				if maxAgeDays <= 0 {
					maxAgeDays = defaultMaxAgeDays
				}
				pruned, err = cleanup.PruneByAge(dir, maxAgeDays, time.Now(), dryRun)
			}

			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pruned) == 0 {
				fmt.Fprintln(out, "No traces to clean up.")
				return nil
			}

			verb := "Removed"
			if dryRun {
				verb = "Would remove"
			}

			for _, name := range pruned {
				fmt.Fprintf(out, "  %s %s\n", verb, name)
			}
			fmt.Fprintf(out, "%s %d trace(s).\n", verb, len(pruned))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", world.TracesDir, "Directory holding the trace archives")
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep only the last N traces (0 = use age-based cleanup)")
	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", defaultMaxAgeDays, "Remove traces older than this many days")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview what would be removed without deleting")
	return cmd
}
