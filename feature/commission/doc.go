// Package commission knows the commission statement kinds: their schemas,
// how to extract records from referrer HTML and broker, branch and executive
// summary workbooks, and where statements are read from.
//
// It also exposes reconciliation runs over HTTP:
//
//	POST /reconcile/:kind       reconcile two bucket prefixes
//	GET  /reconcile/kinds       list document kinds
//	GET  /reconcile/runs        list recent runs
//	GET  /reconcile/runs/:id    load a run with its discrepancies
package commission
