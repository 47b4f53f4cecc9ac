// Package constants provides shared constants for the poverty-level application.
package constants

// Guideline table constants
const (
	// FirstSupportedYear is the earliest year with a published guideline table.
	FirstSupportedYear = 2013

	// LatestSupportedYear is the most recent year with a published guideline table.
	// It is also the table used when no year has been set.
	LatestSupportedYear = 2014

	// TabulatedHouseholdSizes is the largest household size listed explicitly
	// in a guideline table; larger households use the per-person increment.
	TabulatedHouseholdSizes = 8
)

// Ratio constants
const (
	// DefaultPrecision is the number of decimal places used for guideline ratios.
	DefaultPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
