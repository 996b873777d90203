package report

import (
	"context"
	"errors"
	"fmt"

	"commission-comparer/core/database"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// Repository persists reconciliation runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the run history tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Run{}, &DiscrepancyRow{})
}

// Verify checks that the run history tables carry the expected columns.
func (r *Repository) Verify() error {
	if err := database.VerifyColumns(r.db, Run{}.TableName(),
		[]string{"id", "kind", "source_a", "source_b", "margin", "started_at", "finished_at", "report_object"}); err != nil {
		return err
	}
	return database.VerifyColumns(r.db, DiscrepancyRow{}.TableName(),
		[]string{"id", "run_id", "position", "document", "kind", "message"})
}

// Save stores a run and its discrepancies in one transaction.
func (r *Repository) Save(ctx context.Context, run *Run) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Discrepancies").Create(run).Error; err != nil {
			return err
		}
		if len(run.Discrepancies) == 0 {
			return nil
		}
		return tx.CreateInBatches(&run.Discrepancies, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// SetReportObject records where the run's workbook was published.
func (r *Repository) SetReportObject(ctx context.Context, id, object string) error {
	res := r.db.WithContext(ctx).Model(&Run{}).Where("id = ?", id).Update("report_object", object)
	if res.Error != nil {
		return fmt.Errorf("failed to update run %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRunNotFound
	}
	return nil
}

// Get loads a run with its discrepancies in report order.
func (r *Repository) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := r.db.WithContext(ctx).
		Preload("Discrepancies", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return &run, nil
}

// List returns the most recent runs without their discrepancies.
func (r *Repository) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
