package config

import (
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"

	"github.com/nao1215/slareport/internal/sla"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "slareport"

	// DefaultListenAddr is the address the upload server binds to.
	DefaultListenAddr = ":8080"

	// DefaultMaxUploadSize limits the size of an uploaded export.
	// A day of orders across eight stores is well below a megabyte; 32MB
	// leaves room for month-long exports without letting a client exhaust
	// memory, since uploads are processed in memory.
	DefaultMaxUploadSize = 32 << 20

	// DefaultBreachAlertPercent is the grand total breach percentage above
	// which the Markdown report carries a warning.
	DefaultBreachAlertPercent = 20
)

// Config holds all configuration options for slareport.
// This struct is populated from CLI flags and the optional config file and
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// InputPath is the CSV or XLSX export to read.
	InputPath string

	// FilterDate is the target business date in DD/MM/YYYY form.
	// It is validated by the engine, not here, so that the CLI and the
	// server report the same message.
	FilterDate string

	// Sheet selects the worksheet of an XLSX input. Empty means the first sheet.
	Sheet string

	// Stores is the allow-list of dark stores, in report order.
	Stores []string

	// CutoffHour separates Quick from Non Quick orders.
	CutoffHour int

	// BreachAlertPercent is the breach percentage that triggers a warning
	// in the Markdown report.
	BreachAlertPercent int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .slareport in the current directory,
	// the user's home directory and the XDG config directory.
	ConfigFilePath string

	// JSONReport enables JSON output. Mutually exclusive with the other formats.
	JSONReport bool

	// MarkdownReport enables Markdown output. Mutually exclusive with the other formats.
	MarkdownReport bool

	// ExcelReport enables XLSX output. Mutually exclusive with the other
	// formats. It requires ReportFile because a workbook is binary.
	ExcelReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Tee also prints the report to stdout when ReportFile is set.
	Tee bool

	// ListenAddr is the address of the upload server.
	ListenAddr string

	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize int64
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (cutoff hour, store
// list, listen address). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		Stores:             slices.Clone(sla.DefaultStores),
		CutoffHour:         sla.DefaultCutoffHour,
		BreachAlertPercent: DefaultBreachAlertPercent,
		ListenAddr:         DefaultListenAddr,
		MaxUploadSize:      DefaultMaxUploadSize,
	}
}

// ApplyFile overlays the values set in a config file.
// Unset fields in the file leave the current values untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if len(f.Stores) > 0 {
		c.Stores = slices.Clone(f.Stores)
	}
	if f.CutoffHour != nil {
		c.CutoffHour = *f.CutoffHour
	}
	if f.Sheet != "" && c.Sheet == "" {
		c.Sheet = f.Sheet
	}
	if f.BreachAlertPercent != nil {
		c.BreachAlertPercent = *f.BreachAlertPercent
	}
	if f.Server.Listen != "" {
		c.ListenAddr = f.Server.Listen
	}
	if f.Server.MaxUploadSize > 0 {
		c.MaxUploadSize = f.Server.MaxUploadSize
	}
}

// XDGConfigDir returns the XDG config directory for slareport.
// On Linux: ~/.config/slareport
// On macOS: ~/Library/Application Support/slareport
// On Windows: %APPDATA%\slareport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the options shared by every command.
// It returns a specific error describing what is invalid.
//
// Design decision: We return the first error found rather than collecting
// all errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Stores) == 0 {
		return ErrNoStores
	}
	for _, s := range c.Stores {
		if s == "" {
			return ErrEmptyStore
		}
	}

	if c.CutoffHour < 0 || c.CutoffHour > 23 {
		return ErrInvalidCutoffHour
	}

	if c.BreachAlertPercent < 0 || c.BreachAlertPercent > 100 {
		return ErrInvalidBreachAlert
	}

	return nil
}

// ValidateReport checks the options of the report command.
func (c *Config) ValidateReport() error {
	if c.InputPath == "" {
		return ErrNoInput
	}

	if c.FilterDate == "" {
		return ErrNoDate
	}

	formats := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.ExcelReport} {
		if enabled {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.ExcelReport && c.ReportFile == "" {
		return ErrExcelNeedsFile
	}

	if c.Tee && c.ReportFile == "" {
		return ErrTeeNeedsFile
	}

	return c.Validate()
}

// ValidateServe checks the options of the serve command.
func (c *Config) ValidateServe() error {
	if c.ListenAddr == "" {
		return ErrNoListenAddr
	}

	if c.MaxUploadSize <= 0 {
		return ErrInvalidMaxUploadSize
	}

	return c.Validate()
}
