// Package config provides configuration structures and utilities for slareport.
// It defines the report options (input file, target date, output format),
// the SLA rules that may be tuned per deployment (store allow-list, cutoff
// hour) and the settings of the upload server.
package config
