package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ogulcanaydogan/budget-intake/pkg/storage"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous collection runs",
	Long:  `List runs recorded in the journal, newest first, with the files each run wrote.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !cfg.Journal.Enabled {
		fmt.Fprintln(out, "Journal is disabled. Set journal.enabled to record runs.")
		return nil
	}

	store, err := storage.NewSQLite(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet. Run 'intake' to collect figures.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STARTED\tRUN ID\tSTATUS\tKIND\tWRITTEN\tERROR\n")
	for _, r := range runs {
		written := make([]string, 0, len(r.Phases))
		for _, p := range r.Phases {
			written = append(written, fmt.Sprintf("%s(%d)", p.Location, p.FieldCount))
		}
		phases := strings.Join(written, " ")
		if phases == "" {
			phases = "-"
		}
		errText := r.Error
		if errText == "" {
			errText = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.ID, r.Status, r.NumberKind, phases, errText,
		)
	}
	return w.Flush()
}
