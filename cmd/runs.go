package cmd

import (
	"fmt"
	"strconv"

	"commission-comparer/core/config"
	"commission-comparer/core/database"
	"commission-comparer/feature/report"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var limitFlag int

// runsCmd lists saved reconciliation runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved reconciliation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		repo := report.NewRepository(db)
		if err := repo.Verify(); err != nil {
			return fmt.Errorf("run history is not migrated: %w", err)
		}

		runs, err := repo.List(cmd.Context(), limitFlag)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Run", "Kind", "Started", "Source A", "Source B", "Discrepancies", "Skipped")
		for _, run := range runs {
			row := []string{
				run.ID,
				run.Kind,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				run.SourceA,
				run.SourceB,
				strconv.Itoa(run.Summary().Total()),
				strconv.Itoa(run.Skipped),
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	runsCmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of runs")
	RootCmd.AddCommand(runsCmd)
}
