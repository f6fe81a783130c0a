package config

// File is the YAML configuration file.
//
// Example:
//
//	stores:
//	  - BLR_koramangala
//	  - KOL-Topsia
//	cutoffHour: 15
//	server:
//	  listen: ":8080"
type File struct {
	// Stores replaces the default allow-list. Order defines report row order.
	Stores []string `yaml:"stores,omitempty"`

	// CutoffHour overrides the Quick cutoff. A pointer so that 0 can be set.
	CutoffHour *int `yaml:"cutoffHour,omitempty"`

	// Sheet is the default worksheet for XLSX inputs.
	Sheet string `yaml:"sheet,omitempty"`

	// BreachAlertPercent overrides the Markdown warning threshold.
	BreachAlertPercent *int `yaml:"breachAlertPercent,omitempty"`

	// Server holds the upload server settings.
	Server ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig holds the upload server settings of the config file.
type ServerConfig struct {
	// Listen is the address to bind, e.g. ":8080".
	Listen string `yaml:"listen,omitempty"`

	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize int64 `yaml:"maxUploadSize,omitempty"`
}
