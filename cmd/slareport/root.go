package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for slareport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slareport",
		Short: "Delivery SLA report for dark stores",
		Long: `slareport reads a delivery-operations export (CSV or XLSX), keeps the
delivered orders of the allow-listed dark stores that were completed on one
date, and reports how many met or breached their turnaround time (TAT).

An order placed before 15:00 must be delivered by 23:59:59 the same day;
later orders have until 23:59:59 the next day.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
