package commands

import (
	"github.com/spf13/cobra"

	"systest/internal/logging"
	"systest/internal/storage"
	"systest/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	storage storage.Storage
	logger  logging.Logger
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(st storage.Storage) *FailuresCommand {
	return &FailuresCommand{
		storage: st,
		logger:  logging.Nop(),
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := fc.storage.Load()
	if err != nil {
		return err
	}

	var viewer ui.Viewer = ui.NewFailureViewer(fc.storage, fc.logger)
	return viewer.View(report)
}
