package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"commission-comparer/core/config"
	"commission-comparer/core/database"
	"commission-comparer/core/logger"
	"commission-comparer/core/reconcile"
	"commission-comparer/core/storage"
	"commission-comparer/feature/commission"
	"commission-comparer/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	marginFlag  float64
	outFlag     string
	workersFlag int
	saveFlag    bool
	bucketFlag  bool
	publishFlag bool
	strictFlag  bool
)

// reconcileCmd reconciles two statement directories.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <kind> <source_a> <source_b>",
	Short: "Reconcile two sets of commission statements",
	Long: `Reconcile every statement of source_a against its counterpart in source_b.

Sources are local directories, or prefixes of the configured bucket with --bucket.
The report is printed as a table and written as a workbook under the output
directory, named after the run id.

Examples:
  # Compare two local directories with a one cent tolerance
  reconcile referrer ./loankit ./infynity --margin 0.01

  # Compare bucket prefixes, save the run and publish the workbook
  reconcile branch loankit/2019-07 infynity/2019-07 --bucket --save --publish`,
	Args:      cobra.ExactArgs(3),
	ValidArgs: commission.Kinds(),
	RunE:      runReconcile,
}

func init() {
	reconcileCmd.Flags().Float64Var(&marginFlag, "margin", 0, "Numeric tolerance (defaults to RECONCILE_MARGIN)")
	reconcileCmd.Flags().StringVar(&outFlag, "out", "", "Output directory for workbooks (defaults to RECONCILE_OUTPUT_DIR)")
	reconcileCmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent document pairs (defaults to RECONCILE_WORKERS)")
	reconcileCmd.Flags().BoolVar(&saveFlag, "save", false, "Save the run to the history database")
	reconcileCmd.Flags().BoolVar(&bucketFlag, "bucket", false, "Read sources as prefixes of the storage bucket")
	reconcileCmd.Flags().BoolVar(&publishFlag, "publish", false, "Upload the workbook to the storage bucket")
	reconcileCmd.Flags().BoolVar(&strictFlag, "strict", false, "Fail when any discrepancy is found")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	kind, pathA, pathB := args[0], args[1], args[2]
	if _, err := commission.Lookup(kind); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("margin") {
		cfg.Reconcile.Margin = marginFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.Reconcile.Workers = workersFlag
	}
	if outFlag != "" {
		cfg.Reconcile.OutputDir = outFlag
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	var client storage.Client
	if bucketFlag || publishFlag {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	var db *gorm.DB
	if saveFlag {
		if db, err = database.Connect(cfg.Database); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := report.NewRepository(db).Migrate(); err != nil {
			return fmt.Errorf("failed to migrate run history: %w", err)
		}
	}

	var a, b reconcile.Source = commission.NewDirSource(pathA), commission.NewDirSource(pathB)
	if bucketFlag {
		a = commission.NewBucketSource(client, cfg.Storage.Bucket, pathA)
		b = commission.NewBucketSource(client, cfg.Storage.Bucket, pathB)
	}

	// The service publishes whenever it holds a client.
	var publisher storage.Client
	if publishFlag {
		publisher = client
	}
	svc := commission.NewService(cfg.Reconcile, publisher, cfg.Storage.Bucket, l, db)

	res, err := svc.Run(ctx, kind, a, b, cfg.Reconcile.Margin)
	if err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}

	path, err := writeWorkbook(cfg.Reconcile.OutputDir, res)
	if err != nil {
		return err
	}

	s := res.Report.Summary
	l.Info("Reconciliation report",
		zap.String("run_id", res.RunID),
		zap.String("workbook", path),
		zap.Int("paired_documents", s.PairedDocuments),
		zap.Int("missing_documents", s.MissingDocuments),
		zap.Int("missing_rows", s.MissingRows),
		zap.Int("missing_columns", s.MissingColumns),
		zap.Int("field_mismatches", s.FieldMismatches),
		zap.Int("skipped", s.Skipped),
	)
	for _, sk := range res.Report.Skipped {
		l.Warn("Skipped document", zap.String("side", string(sk.Side)), zap.String("name", sk.Name), zap.String("reason", sk.Reason))
	}

	if err := report.WriteTable(cmd.OutOrStdout(), res.Report); err != nil {
		return err
	}

	if strictFlag && s.Total() > 0 {
		return fmt.Errorf("%d discrepancies found", s.Total())
	}
	return nil
}

// writeWorkbook writes the run workbook to <dir>/<kind>/<run id>.xlsx.
func writeWorkbook(dir string, res *commission.Result) (string, error) {
	path := filepath.Join(dir, res.Report.Kind, res.RunID+".xlsx")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create workbook: %w", err)
	}
	defer f.Close()

	if err := report.WriteWorkbook(f, res.RunID, res.Report); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return path, f.Close()
}
