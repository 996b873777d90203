package cmd

import (
	"context"
	"fmt"
	"strconv"

	"commission-comparer/core/config"
	"commission-comparer/core/database"
	"commission-comparer/core/logger"
	"commission-comparer/core/reconcile"
	"commission-comparer/core/storage"
	"commission-comparer/feature/commission"
	"commission-comparer/feature/report"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// checkCmd groups preflight checks.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check sources, storage and the run history database",
}

// checkSourcesCmd extracts every statement of each source without reconciling.
var checkSourcesCmd = &cobra.Command{
	Use:   "sources <kind> <source>...",
	Short: "Extract statements and list the ones that would be skipped",
	Long: `Extracts every statement of each source and prints its document key and row
count. Statements that do not have the expected layout are listed as skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadCheckConfig()
		if err != nil {
			return err
		}

		var client storage.Client
		if bucketFlag {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to connect to storage: %w", err)
			}
		}

		svc := commission.NewService(cfg.Reconcile, nil, cfg.Storage.Bucket, l, nil)
		kind := args[0]
		skipped := 0
		for _, path := range args[1:] {
			var src reconcile.Source = commission.NewDirSource(path)
			if bucketFlag {
				src = commission.NewBucketSource(client, cfg.Storage.Bucket, path)
			}

			in, err := svc.Inspect(cmd.Context(), kind, src)
			if err != nil {
				return err
			}
			skipped += len(in.Skipped)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Source", "Document", "Key", "Rows")
			for _, doc := range in.Documents {
				if err := table.Append([]string{in.Source, doc.Name, doc.Key, strconv.Itoa(doc.Rows)}); err != nil {
					return err
				}
			}
			for _, sk := range in.Skipped {
				if err := table.Append([]string{in.Source, sk.Name, "SKIPPED", sk.Reason}); err != nil {
					return err
				}
			}
			if err := table.Render(); err != nil {
				return err
			}
		}

		if skipped > 0 {
			return fmt.Errorf("%d statements cannot be extracted", skipped)
		}
		return nil
	},
}

// checkStorageCmd checks the configured bucket.
var checkStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check that the storage bucket exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadCheckConfig()
		if err != nil {
			return err
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		return checkBucket(cmd.Context(), l, client, cfg.Storage, fixFlag)
	},
}

// checkDatabaseCmd checks the run history tables.
var checkDatabaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the run history tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadCheckConfig()
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		repo := report.NewRepository(db)
		err = repo.Verify()
		if err == nil {
			l.Info("Run history tables are intact.")
			return nil
		}
		if !fixFlag {
			l.Warn("Run history tables are incomplete", zap.Error(err))
			l.Info("Run with --fix to migrate the tables.")
			return err
		}

		l.Info("Migrating run history tables...")
		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate run history: %w", err)
		}
		return repo.Verify()
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkSourcesCmd, checkStorageCmd, checkDatabaseCmd)

	checkSourcesCmd.Flags().BoolVar(&bucketFlag, "bucket", false, "Read sources as prefixes of the storage bucket")
	checkStorageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
	checkDatabaseCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate missing tables and columns")
}

func loadCheckConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, l, nil
}

func checkBucket(ctx context.Context, l *zap.Logger, client storage.Client, cfg storage.Config, fix bool) error {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if exists {
		l.Info("Bucket is present.", zap.String("bucket", cfg.Bucket))
		return nil
	}
	if !fix {
		l.Info("Run with --fix to create the bucket.")
		return fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	l.Info("Creating bucket...", zap.String("bucket", cfg.Bucket))
	return storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
}
