package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/slareport/internal/config"
	"github.com/nao1215/slareport/internal/ingest"
	"github.com/nao1215/slareport/internal/model"
	"github.com/nao1215/slareport/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Generate the SLA report for one date",
		Long: `Report reads a CSV or XLSX delivery export and prints the SLA report for
the orders completed on --date.

The export must contain the columns "Order Date", "End Time (Actual)",
"Order Dark Store" and "Order Status". Spreadsheet escapes such as ="ABC"
are removed from every cell before use.

Examples:
  # Print the report for 5 March 2025
  slareport report orders.csv --date 05/03/2025

  # Read the "Orders" sheet of a workbook and write Markdown to a file
  slareport report orders.xlsx --sheet Orders --date 05/03/2025 --markdown -o report.md

  # Write a workbook and print the table too
  slareport report orders.csv --date 05/03/2025 --xlsx -o report.xlsx --tee

Configuration file (.slareport) example:
  stores:
    - BLR_koramangala
    - KOL-Topsia
  cutoffHour: 15`,
		Args: cobra.ExactArgs(1),
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("date", "d", "",
		"Business date to report on, DD/MM/YYYY (required)")
	cmd.Flags().StringP("sheet", "s", "",
		"Worksheet of an XLSX input (default: first sheet)")
	addConfigFlag(cmd)

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report")
	cmd.Flags().BoolP("xlsx", "x", false,
		"Output XLSX workbook (requires --output)")
	cmd.Flags().Bool("orders", false,
		"Include every classified order in JSON output")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"Also print the report to stdout when writing to --output")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildReportConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.ValidateReport(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	withOrders, err := cmd.Flags().GetBool("orders")
	if err != nil {
		return err
	}

	return runReport(ctx, cfg, cmd.OutOrStdout(), withOrders, logger)
}

// buildReportConfig creates a Config from the report command flags.
func buildReportConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.InputPath = args[0]
	}

	if cfg.FilterDate, err = cmd.Flags().GetString("date"); err != nil {
		return nil, err
	}

	sheet, err := cmd.Flags().GetString("sheet")
	if err != nil {
		return nil, err
	}
	if sheet != "" {
		cfg.Sheet = sheet
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ExcelReport, err = cmd.Flags().GetBool("xlsx"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Tee, err = cmd.Flags().GetBool("tee"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runReport reads the input, generates the report and writes it.
func runReport(ctx context.Context, cfg *config.Config, stdout io.Writer, withOrders bool, logger *slog.Logger) error {
	logger.Info("generating report",
		"input", cfg.InputPath,
		"date", cfg.FilterDate,
		"stores", len(cfg.Stores),
		"cutoffHour", cfg.CutoffHour,
	)

	table, err := ingest.ReadFile(cfg.InputPath, cfg.Sheet)
	if err != nil {
		return err
	}

	result, err := newEngine(cfg, logger).GenerateReportFromTable(ctx, table, cfg.FilterDate)
	if err != nil {
		return err
	}

	return outputReport(cfg, result, stdout, withOrders)
}

// outputReport writes result to the configured destination and format.
func outputReport(cfg *config.Config, result *model.ReportResult, stdout io.Writer, withOrders bool) error {
	if cfg.ReportFile == "" {
		return writeReport(newReportWriter(cfg, stdout, withOrders), result)
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may carry business figures, so only the owner can read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	return writeReportFile(cfg, result, f, stdout, withOrders)
}

// writeReportFile writes result to out and closes it, returning a failed
// close as an error. With --tee the report is printed to stdout as well;
// a workbook is shown there as the text table.
func writeReportFile(cfg *config.Config, result *model.ReportResult, out io.WriteCloser, stdout io.Writer, withOrders bool) error {
	writer := newReportWriter(cfg, out, withOrders)
	if cfg.Tee {
		var console report.Writer
		if cfg.ExcelReport {
			console = report.NewSimpleWriter(stdout, report.WithVerbose(cfg.Verbose))
		} else {
			console = newReportWriter(cfg, stdout, withOrders)
		}
		writer = report.NewMultiWriter(writer, console)
	}

	if err := writeReport(writer, result); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer, withOrders bool) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint(), report.WithOrders(withOrders))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output, report.WithBreachAlert(cfg.BreachAlertPercent))
	case cfg.ExcelReport:
		return report.NewExcelWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// writeReport runs writer on result.
func writeReport(writer report.Writer, result *model.ReportResult) error {
	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
