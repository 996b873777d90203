package report

import "commission-comparer/core/reconcile"

// sampleReport builds a report with one clean pair, one pair with differences,
// one unpaired document and one skipped document.
func sampleReport() *reconcile.Report {
	locA := &reconcile.SourceLocation{File: "acme_1.xlsx", Sheet: "Vbi Data", Line: 4}
	locB := &reconcile.SourceLocation{File: "acme_2.xlsx", Sheet: "Vbi Data", Line: 5}
	rep := &reconcile.Report{
		Kind:   "branch",
		Margin: 0.01,
		Documents: []reconcile.DocumentResult{
			{
				Key: "acme", NameA: "acme_1.xlsx", NameB: "acme_2.xlsx", RowsA: 3, RowsB: 3,
				Discrepancies: []reconcile.Discrepancy{
					{
						Kind: reconcile.KindFieldMismatch, Document: "acme", LocationA: locA, LocationB: locB,
						Field: "commission", ValueA: "100.00", ValueB: "101.00",
						Message: "Value of commission does not match",
					},
					{
						Kind: reconcile.KindMissingPair, Side: reconcile.SideA, Document: "acme", LocationA: locA,
						Message: "No corresponding row in commission file",
					},
				},
			},
			{Key: "beta", NameA: "beta_1.xlsx", NameB: "beta_2.xlsx", RowsA: 2, RowsB: 2},
			{
				Key: "gamma", NameB: "gamma_2.xlsx", RowsB: 1,
				Discrepancies: []reconcile.Discrepancy{{
					Kind: reconcile.KindMissingPair, Side: reconcile.SideB, Document: "gamma",
					LocationB: &reconcile.SourceLocation{File: "gamma_2.xlsx"},
					Message:   "No corresponding commission file found",
				}},
			},
		},
		Skipped: []reconcile.SkippedDocument{{Side: reconcile.SideA, Name: "broken.xlsx", Reason: "missing sheet Vbi Data"}},
	}
	rep.Summary = reconcile.Summarize(rep, 3, 3)
	return rep
}
