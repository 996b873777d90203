package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"commission-comparer/core/config"
	"commission-comparer/core/database"
	"commission-comparer/core/loader"
	"commission-comparer/core/logger"
	"commission-comparer/core/middleware/auth"
	"commission-comparer/core/middleware/rayid"
	"commission-comparer/core/storage"
	"commission-comparer/feature/commission"
	"commission-comparer/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "commission-comparer/docs/swagger"
)

// @title Commission Comparer API
// @version 1.0
// @description API for reconciling commission statements.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Run history is optional; a failed connection only disables it.
		var db *gorm.DB
		if cfg.Database.Enabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else if err := report.NewRepository(conn).Migrate(); err != nil {
				logg.Warn("Run history migration failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Run history enabled", zap.String("driver", cfg.Database.Driver))
			}
		}

		var store storage.Client
		if cfg.Storage.Enabled {
			if store, err = storage.NewClient(cfg.Storage); err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(commission.NewFeature(cfg.Reconcile, store, cfg.Storage.Bucket, logg, db))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		if !cfg.Server.Secured() {
			logg.Warn("API key not set, requests are not authenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
