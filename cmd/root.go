package cmd

import (
	"fmt"
	"os"

	"commission-comparer/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "commission-comparer",
	Short: "Commission statement reconciliation",
	Long: `Commission Comparer reconciles two sets of commission statements
(referrer, broker, branch and executive summary RCTIs) and reports every
missing document, missing row, missing column and mismatched value.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level selects the development encoder with ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
