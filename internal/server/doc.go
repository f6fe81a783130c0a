// Package server provides the upload web surface of slareport.
//
// The server renders an upload form, accepts a delivery export with a
// target date and answers with the SLA report page. Uploads are processed
// in memory and never written to disk.
//
// Routes:
//
//	GET  /         upload form
//	POST /report   multipart form with "file" and "filter_date"
//	GET  /metrics  Prometheus metrics
//	GET  /ping     heartbeat
package server
