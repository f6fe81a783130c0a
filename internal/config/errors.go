package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate methods and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when the report command has no input file.
	ErrNoInput = errors.New("no input file specified")

	// ErrNoDate is returned when the report command has no --date.
	ErrNoDate = errors.New("no date specified: use --date DD/MM/YYYY")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown and --xlsx is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: use only one of --json, --markdown and --xlsx")

	// ErrExcelNeedsFile is returned when --xlsx is used without --output.
	// A workbook is binary and is never written to a terminal.
	ErrExcelNeedsFile = errors.New("--xlsx requires --output")

	// ErrTeeNeedsFile is returned when --tee is used without --output.
	ErrTeeNeedsFile = errors.New("--tee requires --output")

	// ErrNoStores is returned when the store allow-list is empty.
	ErrNoStores = errors.New("store allow-list is empty")

	// ErrEmptyStore is returned when the allow-list contains an empty name.
	ErrEmptyStore = errors.New("store allow-list contains an empty store name")

	// ErrInvalidCutoffHour is returned when the cutoff hour is outside 0-23.
	ErrInvalidCutoffHour = errors.New("invalid cutoff hour: must be between 0 and 23")

	// ErrInvalidBreachAlert is returned when the alert threshold is outside 0-100.
	ErrInvalidBreachAlert = errors.New("invalid breach alert percent: must be between 0 and 100")

	// ErrNoListenAddr is returned when the server has no listen address.
	ErrNoListenAddr = errors.New("no listen address specified")

	// ErrInvalidMaxUploadSize is returned when the upload limit is not positive.
	ErrInvalidMaxUploadSize = errors.New("invalid max upload size: must be positive")
)
