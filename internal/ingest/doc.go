// Package ingest turns delivery-operations exports into typed order records.
//
// Reading and decoding are separate steps:
//   - ReadCSV / ReadXLSX / Read produce a model.Table of raw string cells
//   - Decoder validates the required columns and produces model.OrderRecords
//
// Design decision: Required columns are checked once, at the table boundary,
// and reported with a named error. Nothing downstream accesses columns by
// name, so a missing column can never surface later as a crash.
//
// Row-level problems (unparseable timestamps) are not errors here. They are
// recorded as nil timestamps and classified as NA by the report engine.
package ingest
