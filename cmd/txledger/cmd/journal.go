package cmd

import (
	"fmt"

	"github.com/rustyeddy/txledger/journal"
	"github.com/rustyeddy/txledger/report"
	"github.com/spf13/cobra"
)

func newJournalCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the SQLite audit journal",
		Long: `Query runs recorded with --journal sqlite.

Subcommands:
  runs  - List recorded runs
  show  - Show one run with its outcomes and closing balances

Examples:
  txledger journal runs --db audit.db
  txledger journal show 01HQ3Z8X9Y2K4M6N8P0R2T4V6W --db audit.db`,
	}
	cmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./txledger.sqlite", "path to SQLite journal DB")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			runs, err := j.ListRuns()
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  lines=%d applied=%d rejected=%d malformed=%d clients=%d\n",
					r.RunID, r.Source, r.Lines, r.Applied, r.Rejected, r.Malformed, r.Clients)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			runID := args[0]
			run, err := j.GetRun(runID)
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			counts, err := j.CountByStatus(runID)
			if err != nil {
				return fmt.Errorf("count statuses: %w", err)
			}
			bals, err := j.ListBalances(runID)
			if err != nil {
				return fmt.Errorf("list balances: %w", err)
			}

			s, err := report.FormatRunOrg(run, counts, bals)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.AddCommand(runsCmd, showCmd)
	return cmd
}
