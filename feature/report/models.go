package report

import (
	"time"

	"commission-comparer/core/reconcile"
)

// Run is one persisted reconciliation run.
type Run struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Kind       string    `gorm:"size:32;index" json:"kind"`
	SourceA    string    `gorm:"size:255" json:"source_a"`
	SourceB    string    `gorm:"size:255" json:"source_b"`
	Margin     float64   `json:"margin"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	DocumentsA       int `json:"documents_a"`
	DocumentsB       int `json:"documents_b"`
	PairedDocuments  int `json:"paired_documents"`
	MissingDocuments int `json:"missing_documents"`
	CleanDocuments   int `json:"clean_documents"`
	MissingRows      int `json:"missing_rows"`
	MissingColumns   int `json:"missing_columns"`
	FieldMismatches  int `json:"field_mismatches"`
	Skipped          int `json:"skipped"`

	// ReportObject is the storage object holding the published workbook.
	ReportObject string `gorm:"size:255" json:"report_object,omitempty"`

	Discrepancies []DiscrepancyRow `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"discrepancies,omitempty"`
}

// TableName overrides the default table name.
func (Run) TableName() string { return "reconcile_runs" }

// DiscrepancyRow is one persisted discrepancy of a run.
type DiscrepancyRow struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	RunID    string `gorm:"size:36;index" json:"-"`
	Position int    `json:"position"`
	Document string `gorm:"size:255" json:"document"`
	Kind     string `gorm:"size:32" json:"kind"`
	Side     string `gorm:"size:1" json:"side,omitempty"`
	FileA    string `gorm:"size:255" json:"file_a,omitempty"`
	FileB    string `gorm:"size:255" json:"file_b,omitempty"`
	Sheet    string `gorm:"size:64" json:"sheet,omitempty"`
	LineA    int    `json:"line_a,omitempty"`
	LineB    int    `json:"line_b,omitempty"`
	Field    string `gorm:"size:128" json:"field,omitempty"`
	ValueA   string `gorm:"type:text" json:"value_a,omitempty"`
	ValueB   string `gorm:"type:text" json:"value_b,omitempty"`
	Message  string `gorm:"size:255" json:"message"`
}

// TableName overrides the default table name.
func (DiscrepancyRow) TableName() string { return "reconcile_discrepancies" }

// Summary rebuilds the aggregate counts of the run.
func (r *Run) Summary() reconcile.Summary {
	return reconcile.Summary{
		DocumentsA:       r.DocumentsA,
		DocumentsB:       r.DocumentsB,
		PairedDocuments:  r.PairedDocuments,
		MissingDocuments: r.MissingDocuments,
		CleanDocuments:   r.CleanDocuments,
		MissingRows:      r.MissingRows,
		MissingColumns:   r.MissingColumns,
		FieldMismatches:  r.FieldMismatches,
		Skipped:          r.Skipped,
	}
}

// NewRun flattens a report into a persistable run.
func NewRun(id, sourceA, sourceB string, rep *reconcile.Report, started, finished time.Time) *Run {
	s := rep.Summary
	run := &Run{
		ID:               id,
		Kind:             rep.Kind,
		SourceA:          sourceA,
		SourceB:          sourceB,
		Margin:           rep.Margin,
		StartedAt:        started,
		FinishedAt:       finished,
		DocumentsA:       s.DocumentsA,
		DocumentsB:       s.DocumentsB,
		PairedDocuments:  s.PairedDocuments,
		MissingDocuments: s.MissingDocuments,
		CleanDocuments:   s.CleanDocuments,
		MissingRows:      s.MissingRows,
		MissingColumns:   s.MissingColumns,
		FieldMismatches:  s.FieldMismatches,
		Skipped:          s.Skipped,
	}

	for i, d := range rep.Discrepancies() {
		row := DiscrepancyRow{
			RunID:    id,
			Position: i,
			Document: d.Document,
			Kind:     string(d.Kind),
			Side:     string(d.Side),
			Field:    d.Field,
			ValueA:   d.ValueA,
			ValueB:   d.ValueB,
			Message:  d.Message,
		}
		if d.LocationA != nil {
			row.FileA, row.LineA, row.Sheet = d.LocationA.File, d.LocationA.Line, d.LocationA.Sheet
		}
		if d.LocationB != nil {
			row.FileB, row.LineB = d.LocationB.File, d.LocationB.Line
			if row.Sheet == "" {
				row.Sheet = d.LocationB.Sheet
			}
		}
		run.Discrepancies = append(run.Discrepancies, row)
	}
	return run
}
