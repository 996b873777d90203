// Package report turns reconciliation reports into artifacts: an xlsx workbook,
// a console table, a persisted run history and a published object in storage.
//
// A run is identified by an id chosen by the caller, so several runs can share
// an output directory or bucket without overwriting each other.
package report
