package cmd

import (
	"fmt"

	"github.com/rustyeddy/txledger/config"
	"github.com/rustyeddy/txledger/feed"
	"github.com/rustyeddy/txledger/journal"
	"github.com/rustyeddy/txledger/ledger"
	"github.com/rustyeddy/txledger/logging"
	"github.com/rustyeddy/txledger/report"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath    string
	strictAmounts bool
	logLevel      string
	logFormat     string
	format        string
	journalType   string
	journalDB     string
	journalTx     string
	journalBal    string
}

// NewRootCmd builds the txledger command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "txledger <transactions.csv>",
		Short: "Replay a transaction file and print client balances",
		Long: `txledger applies deposits, withdrawals, disputes, resolves and chargebacks
from a CSV file (type,client,tx,amount) in input order and prints the final
balances of every client as CSV on stdout.

Malformed lines and rejected transactions are logged on stderr and skipped.
Inputs ending in .gz or .xz are decompressed.

Examples:
  txledger transactions.csv > accounts.csv
  txledger --journal sqlite --journal-db audit.db transactions.csv
  txledger --config ledger.yaml --format org transactions.csv.xz`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (YAML or JSON)")
	f.BoolVar(&opts.strictAmounts, "strict-amounts", false, "reject deposits/withdrawals without a valid amount")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", "console", "log format (console or json)")
	f.StringVarP(&opts.format, "format", "o", "csv", "output format (csv or org)")
	f.StringVar(&opts.journalType, "journal", "none", "audit journal (none, csv or sqlite)")
	f.StringVar(&opts.journalDB, "journal-db", "", "SQLite journal path")
	f.StringVar(&opts.journalTx, "journal-tx", "", "CSV journal transactions file")
	f.StringVar(&opts.journalBal, "journal-balances", "", "CSV journal balances file")

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newJournalCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the config file, if any, and lets explicit flags win.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("strict-amounts") {
		cfg.Ledger.StrictAmounts = opts.strictAmounts
	}
	if f.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if f.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if f.Changed("journal") {
		cfg.Journal.Type = opts.journalType
	}
	if f.Changed("journal-db") {
		cfg.Journal.DBPath = opts.journalDB
	}
	if f.Changed("journal-tx") {
		cfg.Journal.TransactionsFile = opts.journalTx
	}
	if f.Changed("journal-balances") {
		cfg.Journal.BalancesFile = opts.journalBal
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.TransactionsFile, cfg.BalancesFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return journal.Nop{}, nil
	}
}

func runLedger(cmd *cobra.Command, opts *rootOptions, path string) (err error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	ctx := logging.WithContext(cmd.Context(), log)

	src, err := feed.Open(path, feed.Options{StrictAmounts: cfg.Ledger.StrictAmounts})
	if err != nil {
		return err
	}
	defer src.Close()

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer func() {
		if cerr := j.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close journal: %w", cerr)
		}
	}()

	engine := ledger.NewEngine(ledger.WithJournal(j), ledger.WithSourceName(path))
	if _, err := engine.Process(ctx, src); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return report.Write(cmd.OutOrStdout(), report.Format(cfg.Output.Format), engine.Snapshot())
}
