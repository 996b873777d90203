package commission

import (
	"commission-comparer/core/reconcile"
	"commission-comparer/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new commission reconciliation feature.
func NewFeature(cfg reconcile.Config, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Feature {
	svc := NewService(cfg, client, bucket, logger, db)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "commission"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
