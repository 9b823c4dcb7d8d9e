package config

import (
	"path/filepath"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Suite file
	ConfigPath string

	// Output settings
	ResultsDir   string
	ResultsFile  string
	ResultsDSN   string
	ResultsTable string

	// Program overrides, applied on top of the suite file
	ProducerApp  string
	ConsumerApp  string
	TransportApp string

	// Supervision settings
	ReadyInterval time.Duration
	KillGrace     time.Duration

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigPath  string
	Debug       bool
	ListTests   bool
	Tests       []string
	NameFilter  string
	Progress    bool
	MetricsFile string
	ResultsDSN  string
	NoSave      bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ConfigPath:    DefaultConfigPath,
		ResultsDir:    DefaultResultsDir,
		ResultsFile:   DefaultResultsFile,
		ResultsTable:  DefaultResultsTable,
		ReadyInterval: DefaultReadyInterval,
		KillGrace:     DefaultKillGrace,
	}
}

// GetConfigPath returns the suite file path, using the flag if provided
func (c *Config) GetConfigPath() string {
	if c.Flags.ConfigPath != "" {
		return c.Flags.ConfigPath
	}
	return c.ConfigPath
}

// GetResultsPath returns the absolute path of the last run report.
// run and failures must agree on it regardless of cwd changes.
func (c *Config) GetResultsPath() string {
	p := filepath.Join(c.ResultsDir, c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetResultsDSN returns the MySQL DSN results are recorded to, empty when disabled
func (c *Config) GetResultsDSN() string {
	if c.Flags.ResultsDSN != "" {
		return c.Flags.ResultsDSN
	}
	return c.ResultsDSN
}
