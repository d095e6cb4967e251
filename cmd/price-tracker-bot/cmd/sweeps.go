package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"price-tracker-bot/internal/config"
	"price-tracker-bot/internal/store"
)

var sweepsLimit int

var sweepsCmd = &cobra.Command{
	Use:   "sweeps",
	Short: "List recent sweep runs",
	RunE:  runSweeps,
}

func init() {
	sweepsCmd.Flags().IntVar(&sweepsLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(sweepsCmd)
}

func runSweeps(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	runs, err := st.ListSweepRuns(ctx, sweepsLimit)
	if err != nil {
		return fmt.Errorf("listing sweep runs: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTATUS\tCHECKED\tUPDATED\tNOTIFIED\tDURATION\tERROR")
	for _, run := range runs {
		duration := "-"
		if run.FinishedAt != nil {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.StartedAt.Format(time.RFC3339),
			run.Status,
			run.ItemsChecked,
			run.ItemsUpdated,
			run.NotificationsSent,
			duration,
			run.Error,
		)
	}
	return w.Flush()
}
