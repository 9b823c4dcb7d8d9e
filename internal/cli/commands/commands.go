package commands

import (
	"os"

	"github.com/spf13/cobra"

	"systest/internal/cli"
	"systest/internal/config"
	"systest/internal/discovery"
	"systest/internal/logging"
	"systest/internal/storage"
	"systest/internal/ui"
	"systest/internal/validation"
)

// Commands holds all CLI commands
type Commands struct {
	config   *config.Config
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(os.Stdout)
	validator := validation.NewValidator()

	return &Commands{
		config:   cfg,
		Run:      NewRunCommand(cfg, filter, validator, jsonStorage, formatter),
		List:     NewListCommand(cfg, filter, jsonStorage, formatter),
		Failures: NewFailuresCommand(jsonStorage),
	}
}

// setLogger hands the logger built from the parsed flags to every command
func (c *Commands) setLogger(logger logging.Logger) {
	c.Run.logger = logger
	c.List.logger = logger
	c.Failures.logger = logger
}

// Register registers all commands with cobra. The root command runs the suite.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	flags.AddPersistentFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		c.config.Flags = flags.ToConfigFlags(args)
		c.setLogger(logging.New(logging.Options{
			Debug:  c.config.Flags.Debug,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		}))
		return nil
	}

	rootCmd.RunE = c.Run.Execute
	rootCmd.Args = cobra.ArbitraryArgs
	flags.AddRunFlags(rootCmd.Flags())

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [test...]",
		Short: "Run the system test suite",
		Long:  "Run every test of the suite, or only the named ones, pairing a producer and a consumer over a virtual serial link",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.Run.Execute,
	}
	flags.AddRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tests defined in the suite",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards)")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display failed tests of the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
