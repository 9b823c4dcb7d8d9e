package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"systest/internal/config"
	"systest/internal/discovery"
	"systest/internal/logging"
	"systest/internal/storage"
	"systest/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	logger    logging.Logger
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		logger:    logging.Nop(),
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suite, err := config.LoadSuite(lc.config.GetConfigPath())
	if err != nil {
		return err
	}

	cases := lc.filter.FilterByName(suite.Cases, lc.config.Flags.NameFilter)
	if len(cases) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	lc.logger.Debug("Listing %d of %d test(s) from %s", len(cases), len(suite.Cases), suite.Path)
	lc.formatter.PrintTestList(cases, lastFailed(lc.storage))
	return nil
}
