package commission

import (
	"context"
	"errors"
	"time"

	"commission-comparer/core/reconcile"
	"commission-comparer/core/storage"
	"commission-comparer/feature/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrStorageDisabled is returned for bucket operations without a storage client.
	ErrStorageDisabled = errors.New("object storage is not configured")
	// ErrHistoryDisabled is returned for run history queries without a database.
	ErrHistoryDisabled = errors.New("run history is not configured")
)

// Result is the outcome of one reconciliation run.
type Result struct {
	RunID        string            `json:"run_id"`
	ReportObject string            `json:"report_object,omitempty"`
	Report       *reconcile.Report `json:"report"`
}

// Service runs reconciliations and keeps their history.
type Service struct {
	cfg       reconcile.Config
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	repo      *report.Repository
	publisher *report.Publisher
	cache     *reconcile.DocumentCache
}

// NewService creates a reconciliation service. client and db may be nil, which
// disables bucket sources and publishing, and run history respectively.
func NewService(cfg reconcile.Config, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	s := &Service{
		cfg:    cfg,
		client: client,
		bucket: bucket,
		logger: logger,
	}
	if client != nil {
		s.publisher = report.NewPublisher(client, bucket)
	}
	if db != nil {
		s.repo = report.NewRepository(db)
	}
	if ttl := cfg.CacheTTL(); ttl > 0 {
		s.cache = reconcile.NewDocumentCache(ttl)
	}
	return s
}

// DefaultMargin returns the configured numeric tolerance.
func (s *Service) DefaultMargin() float64 {
	return s.cfg.Margin
}

// Repository returns the run history store, nil when disabled.
func (s *Service) Repository() *report.Repository {
	return s.repo
}

// BucketSources returns sources over two prefixes of the configured bucket.
func (s *Service) BucketSources(prefixA, prefixB string) (reconcile.Source, reconcile.Source, error) {
	if s.client == nil {
		return nil, nil, ErrStorageDisabled
	}
	return NewBucketSource(s.client, s.bucket, prefixA), NewBucketSource(s.client, s.bucket, prefixB), nil
}

// Run reconciles documents of kind from a against b. The run is saved when a
// database is configured and its workbook published when storage is.
func (s *Service) Run(ctx context.Context, kind string, a, b reconcile.Source, margin float64) (*Result, error) {
	ex, err := Lookup(kind)
	if err != nil {
		return nil, err
	}

	spec := s.cfg.NewSpec(ex, s.cache)
	spec.Margin = margin
	spec.Logger = s.logger.With(zap.String("kind", kind))

	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID), zap.String("kind", kind))
	l.Info("Starting reconciliation",
		zap.String("source_a", a.Name()),
		zap.String("source_b", b.Name()),
		zap.Float64("margin", margin))

	started := time.Now()
	rep, err := reconcile.ReconcileDirectory(ctx, spec, a, b)
	if err != nil {
		return nil, err
	}
	finished := time.Now()

	l.Info("Reconciliation finished",
		zap.Int("discrepancies", rep.Summary.Total()),
		zap.Int("skipped", rep.Summary.Skipped),
		zap.Duration("duration", finished.Sub(started)))

	res := &Result{RunID: runID, Report: rep}

	if s.repo != nil {
		run := report.NewRun(runID, a.Name(), b.Name(), rep, started, finished)
		if err := s.repo.Save(ctx, run); err != nil {
			return nil, err
		}
	}

	if s.publisher != nil {
		object, err := s.publisher.Publish(ctx, runID, rep)
		if err != nil {
			return nil, err
		}
		res.ReportObject = object
		l.Info("Report published", zap.String("object", object))

		if s.repo != nil {
			if err := s.repo.SetReportObject(ctx, runID, object); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Runs lists the most recent runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]report.Run, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.List(ctx, limit)
}

// GetRun loads one run with its discrepancies.
func (s *Service) GetRun(ctx context.Context, id string) (*report.Run, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.Get(ctx, id)
}

// Inspect extracts every document of src as kind without reconciling.
func (s *Service) Inspect(ctx context.Context, kind string, src reconcile.Source) (*reconcile.Inspection, error) {
	ex, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	spec := s.cfg.NewSpec(ex, s.cache)
	spec.Logger = s.logger.With(zap.String("kind", kind))
	return reconcile.Inspect(ctx, spec, reconcile.SideA, src)
}
