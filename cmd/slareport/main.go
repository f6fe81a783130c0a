// Package main provides the entry point for the slareport CLI.
//
// slareport turns a delivery-operations export into a per-store SLA
// report for one business date.
//
// Usage:
//
//	slareport report orders.csv --date 05/03/2025
//	slareport serve --addr :8080
//
// See --help for all available options.
package main

// main is the entry point for slareport.
func main() {
	Execute()
}
