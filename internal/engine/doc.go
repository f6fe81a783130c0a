// Package engine generates SLA reports.
//
// An Engine wires the ingest decoder and the report pipeline together:
// it validates the target date, decodes the order table and runs the
// filter, classify and aggregate steps.
//
// The engine holds no mutable state after construction, so one Engine
// may serve concurrent calls on different inputs.
package engine
