// Package config provides configuration management for the commission comparer.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Reconcile: default margin, worker count, document cache and report directory
//   - Server: HTTP server settings (port, API key)
//   - Database: run history connection (MySQL or SQLite)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Environment variables use the SECTION_KEY form, e.g. RECONCILE_MARGIN or STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.Margin)
package config
