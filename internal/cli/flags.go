package cli

import (
	"github.com/spf13/pflag"

	"systest/internal/config"
)

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

// ToConfigFlags converts CLI flags to config flags. Positional args name tests too.
func (f *Flags) ToConfigFlags(args []string) config.Flags {
	tests := append(append([]string(nil), f.Tests...), args...)
	return config.Flags{
		ConfigPath:  f.ConfigPath,
		Debug:       f.Debug,
		ListTests:   f.ListTests,
		Tests:       tests,
		NameFilter:  f.NameFilter,
		Progress:    f.Progress,
		MetricsFile: f.MetricsFile,
		ResultsDSN:  f.ResultsDSN,
		NoSave:      f.NoSave,
	}
}

// AddPersistentFlags registers the flags shared by every command
func (f *Flags) AddPersistentFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to the suite file (default \""+config.DefaultConfigPath+"\", env "+config.EnvConfigPath+")")
	fs.BoolVarP(&f.Debug, "debug", "d", false, "Print debug output, including the output of every program")
}

// AddRunFlags registers the flags of the run command
func (f *Flags) AddRunFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.ListTests, "list_tests", "l", false, "List available tests and exit")
	fs.StringSliceVarP(&f.Tests, "tests", "t", nil, "Run only the named tests (repeat or comma separate)")
	fs.StringVarP(&f.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'gpgga_*' or '*loop*')")
	fs.BoolVar(&f.Progress, "progress", false, "Show a progress bar on stderr")
	fs.StringVar(&f.MetricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this textfile")
	fs.StringVar(&f.ResultsDSN, "results-dsn", "", "Record results to this MySQL DSN (env "+config.EnvResultsDSN+")")
	fs.BoolVar(&f.NoSave, "no-save", false, "Do not overwrite the last-run results file")
}
