package reconcile

// Summary provides aggregate statistics for a reconciliation report.
type Summary struct {
	// DocumentsA and DocumentsB count successfully extracted documents per side.
	DocumentsA int `json:"documents_a"`
	DocumentsB int `json:"documents_b"`

	// PairedDocuments counts documents found on both sides.
	PairedDocuments int `json:"paired_documents"`

	// MissingDocuments counts documents present on one side only.
	MissingDocuments int `json:"missing_documents"`

	// CleanDocuments counts paired documents without any discrepancy.
	CleanDocuments int `json:"clean_documents"`

	// MissingRows counts line items without a counterpart.
	MissingRows int `json:"missing_rows"`

	// MissingColumns counts fields absent on one side.
	MissingColumns int `json:"missing_columns"`

	// FieldMismatches counts fields whose values disagree.
	FieldMismatches int `json:"field_mismatches"`

	// Skipped counts documents excluded because of schema errors.
	Skipped int `json:"skipped"`
}

// Total returns the number of discrepancies of any kind.
func (s Summary) Total() int {
	return s.MissingDocuments + s.MissingRows + s.MissingColumns + s.FieldMismatches
}

// Summarize computes aggregate counts for a report.
func Summarize(report *Report, documentsA, documentsB int) Summary {
	s := Summary{
		DocumentsA: documentsA,
		DocumentsB: documentsB,
		Skipped:    len(report.Skipped),
	}

	for _, doc := range report.Documents {
		paired := doc.NameA != "" && doc.NameB != ""
		if paired {
			s.PairedDocuments++
			if len(doc.Discrepancies) == 0 {
				s.CleanDocuments++
			}
		}

		for _, d := range doc.Discrepancies {
			switch d.Kind {
			case KindMissingPair:
				if paired {
					s.MissingRows++
				} else {
					s.MissingDocuments++
				}
			case KindMissingColumn:
				s.MissingColumns++
			case KindFieldMismatch:
				s.FieldMismatches++
			}
		}
	}
	return s
}
