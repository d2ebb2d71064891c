// Package diag defines the diagnostic model shared by the literal session,
// the batch driver and the CLI.
//
// A Diagnostic carries a Severity, a Code with a stable string ID, a short
// Message and a Subject naming what it is about (a literal such as "-5", a
// scenario case such as "suite.yaml#meet-signed", or a file path). Notes add
// secondary context, e.g. the constraint that clashed.
//
// Producers emit through a Reporter, usually via ReportBuilder:
//
//	diag.ReportError(r, diag.NumNoIntersection, "-5", "no width satisfies both").
//		WithNote("U8", "unsigned candidate").
//		Emit()
//
// BagReporter collects into a Bag which supports sorting and deduplication.
// Rendering lives in internal/diagfmt.
package diag
