package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"systest/internal/config"
	"systest/internal/discovery"
	"systest/internal/domain"
	"systest/internal/execution"
	"systest/internal/exitcodes"
	"systest/internal/logging"
	"systest/internal/metrics"
	"systest/internal/storage"
	"systest/internal/ui"
)

const recordTimeout = 30 * time.Second

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	validator execution.OutputValidator
	storage   storage.Storage
	formatter *ui.Formatter
	logger    logging.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	validator execution.OutputValidator,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		validator: validator,
		storage:   st,
		formatter: formatter,
		logger:    logging.Nop(),
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	suite, err := config.LoadSuite(rc.config.GetConfigPath())
	if err != nil {
		return err
	}
	suite.ApplyOverrides(rc.config)
	rc.logger.Debug("Suite %s defines: %s", suite.Path, strings.Join(suite.Names(), ", "))

	if rc.config.Flags.ListTests {
		rc.formatter.PrintTestList(suite.Cases, lastFailed(rc.storage))
		return nil
	}

	if err := suite.CheckPrograms(); err != nil {
		return err
	}

	// Every requested name must exist before anything runs
	cases, err := discovery.Select(suite.Cases, rc.config.Flags.Tests)
	if err != nil {
		return err
	}
	cases = rc.filter.FilterByName(cases, rc.config.Flags.NameFilter)

	if len(cases) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	orchestrator := execution.NewOrchestrator(execution.OrchestratorOptions{
		ProducerApp:         suite.ProducerApp,
		ProducerInterpreter: suite.ProducerInterpreter,
		ConsumerApp:         suite.ConsumerApp,
		TransportApp:        suite.TransportApp,
		ReadyInterval:       rc.config.ReadyInterval,
		KillGrace:           rc.config.KillGrace,
		Debug:               rc.config.Flags.Debug,
	}, rc.validator, rc.logger)

	runner := execution.NewSuiteRunner(orchestrator, rc.logger)
	if rc.config.Flags.Progress {
		runner.SetProgress(ui.NewProgressBar(len(cases), os.Stderr))
	}

	var recorder *metrics.Recorder
	if rc.config.Flags.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		runner.AddObserver(recorder)
	}

	res := runner.Run(cmd.Context(), cases)
	report := storage.NewReport(suite.Path, res)

	if !rc.config.Flags.NoSave {
		if err := rc.storage.Save(report); err != nil {
			rc.logger.Warn("Failed to save test results: %v", err)
		}
	}

	if dsn := rc.config.GetResultsDSN(); dsn != "" {
		if err := rc.record(cmd.Context(), dsn, report); err != nil {
			rc.logger.Warn("Failed to record test results: %v", err)
		}
	}

	if recorder != nil {
		recorder.ObserveSuite(res)
		if err := recorder.WriteTextfile(rc.config.Flags.MetricsFile); err != nil {
			rc.logger.Warn("%v", err)
		}
	}

	rc.formatter.PrintSummary(report)

	if res.Failed > 0 {
		return &ExitError{Code: exitcodes.FromFailures(res.Failed)}
	}
	return nil
}

// record appends the report to the results database. It still runs after an
// interrupt so the partial run is kept.
func (rc *RunCommand) record(ctx context.Context, dsn string, report *domain.RunReport) error {
	recorder, err := storage.NewMySQLRecorder(dsn, rc.config.ResultsTable)
	if err != nil {
		return err
	}
	defer recorder.Close()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := recorder.Record(ctx, report); err != nil {
		return fmt.Errorf("record run %s: %w", report.Meta.RunID, err)
	}
	rc.logger.Debug("Recorded %d result(s) to table %s", len(report.Details), rc.config.ResultsTable)
	return nil
}

// lastFailed returns the names of tests that failed in the last saved run
func lastFailed(st storage.Storage) map[string]struct{} {
	report, err := st.Load()
	if err != nil {
		return nil
	}
	failed := make(map[string]struct{})
	for _, c := range report.Failures() {
		failed[c.Name] = struct{}{}
	}
	return failed
}
