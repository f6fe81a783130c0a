// Package report renders SLA report results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: aligned text table for terminal display
//   - MarkdownWriter: Markdown table with a mermaid pie chart
//   - JSONWriter: structured JSON output for tool integration
//   - ExcelWriter: XLSX workbook for spreadsheet users
//   - HTMLWriter: HTML page used by the upload server
//
// Design decision: Report data structures live in the model package and
// keep percentages as integers. Writers are the only place where a
// percentage becomes the "NN%" display string, so every format agrees on
// the same numbers.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
