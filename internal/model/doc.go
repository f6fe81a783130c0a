// Package model defines the core data structures used throughout the SLA report.
//
// This package contains the following main types:
//   - Table: A raw tabular export (header row plus string cells)
//   - OrderRecord: One typed order row decoded from a Table
//   - Classification: The SLA outcome derived for one order
//   - StoreSummary: One aggregated row of the report
//   - ReportResult: The per-store rows followed by the grand total
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The ingest, sla, report and server packages all need these
// types, so centralizing them prevents import cycles.
//
// The report types are designed to be serializable to JSON so the engine's
// output stays machine-comparable; display formatting of percentages happens
// in the report package only.
package model
