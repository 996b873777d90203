// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration. The database only stores the
// history of reconciliation runs; reconciliation itself never needs it.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the
// server within the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table on either dialect, and
// VerifyColumns checks that the run history tables carry the columns the
// report repository expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run history disabled", zap.Error(err))
//	}
//
//	err = database.VerifyColumns(db, "reconcile_runs", []string{"id", "kind"})
package database
