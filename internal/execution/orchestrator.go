package execution

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"systest/internal/domain"
	"systest/internal/logging"
	"systest/internal/validation"
)

// OrchestratorOptions configures the programs and supervision of a test run
type OrchestratorOptions struct {
	ProducerApp         string
	ProducerInterpreter string
	ConsumerApp         string
	TransportApp        string
	ReadyInterval       time.Duration
	KillGrace           time.Duration
	Debug               bool
}

// Orchestrator runs one test case: transport, producer and consumer concurrently,
// then validation.
type Orchestrator struct {
	producerApp string
	consumerApp string
	transport   *TransportManager
	producer    *ProducerRunner
	consumer    *ConsumerRunner
	validator   OutputValidator
	logger      logging.Logger
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(opts OrchestratorOptions, validator OutputValidator, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		producerApp: opts.ProducerApp,
		consumerApp: opts.ConsumerApp,
		transport:   NewTransportManager(opts.TransportApp, opts.ReadyInterval, logger.WithPrefix("[TRANSPORT]")),
		producer:    NewProducerRunner(opts.ProducerInterpreter, opts.Debug, logger.WithPrefix("[SENT]")),
		consumer:    NewConsumerRunner(opts.KillGrace, logger.WithPrefix("[RECEIVED]")),
		validator:   validator,
		logger:      logger,
	}
}

// Run executes tc and reports whether it passed. Both transport endpoints are
// removed before Run returns, whatever the outcome.
func (o *Orchestrator) Run(ctx context.Context, tc domain.TestCase) domain.CaseResult {
	start := time.Now()
	o.logger.Info("Running test %s", tc.Name)

	res := domain.CaseResult{
		Name:        tc.Name,
		Description: tc.Description,
		Validation: domain.ValidationReport{
			Requested: tc.HasValidation(),
			File:      tc.ValidationFile,
		},
	}

	if err := o.prepare(tc); err != nil {
		o.logger.Error("%v", err)
		res.Error = err.Error()
		res.Transport = domain.NotStarted(domain.RunnerTransport, res.Error)
		res.Producer = domain.NotStarted(domain.RunnerProducer, res.Error)
		res.Consumer = domain.NotStarted(domain.RunnerConsumer, res.Error)
		return o.finish(res, start)
	}

	pair := TransportPair{Send: tc.SendPort, Receive: tc.ReceivePort}

	transportCh := make(chan domain.RunResult, 1)
	producerCh := make(chan domain.RunResult, 1)
	consumerCh := make(chan domain.RunResult, 1)
	transportExited := make(chan struct{})

	var g errgroup.Group
	g.Go(func() error {
		defer close(transportExited)
		if !sleepCtx(ctx, tc.TransportStart) {
			transportCh <- domain.NotStarted(domain.RunnerTransport, "interrupted")
			return nil
		}
		transportCh <- o.transport.Pair(ctx, pair, tc.TransportTTL)
		return nil
	})

	if err := o.transport.WaitReady(ctx, pair, tc.ReadyTimeout(), transportExited); err != nil {
		o.logger.Error("%v", err)
		res.Error = err.Error()
		producerCh <- domain.NotStarted(domain.RunnerProducer, "transport not ready")
		consumerCh <- domain.NotStarted(domain.RunnerConsumer, "transport not ready")
	} else {
		g.Go(func() error {
			if !sleepCtx(ctx, tc.ProducerStart) {
				producerCh <- domain.NotStarted(domain.RunnerProducer, "interrupted")
				return nil
			}
			producerCh <- o.producer.Send(ctx, o.producerApp, tc.SentencesFile, tc.SendPort, tc.ProducerTTL, ProducerOptions{
				Baudrate:   tc.Baudrate,
				LinePeriod: tc.LinePeriod,
				Continuous: tc.Continuous,
			})
			return nil
		})
		g.Go(func() error {
			if !sleepCtx(ctx, tc.ConsumerStart) {
				consumerCh <- domain.NotStarted(domain.RunnerConsumer, "interrupted")
				return nil
			}
			consumerCh <- o.consumer.Receive(ctx, o.consumerApp, tc.ReceivePort, tc.OutputFile, tc.ConsumerTTL)
			return nil
		})
	}

	// Every leg reports exactly once; the join is the only synchronization point
	_ = g.Wait()
	res.Transport = <-transportCh
	res.Producer = <-producerCh
	res.Consumer = <-consumerCh

	if err := o.transport.Cleanup(pair); err != nil {
		o.logger.Warn("Removing virtual ports: %v", err)
	}

	if res.Error == "" {
		res.Passed = res.Consumer.Success
		if tc.HasValidation() {
			res.Passed = o.validate(tc, &res.Validation)
		}
	}

	return o.finish(res, start)
}

// prepare checks the inputs of tc and clears leftovers of earlier runs so that
// neither stale links nor a stale output file can make the test pass.
func (o *Orchestrator) prepare(tc domain.TestCase) error {
	info, err := os.Stat(tc.SentencesFile)
	if err != nil || !info.Mode().IsRegular() {
		return domain.NewConfigError("run test", tc.Name, "sentences file %s does not exist", tc.SentencesFile)
	}

	pair := TransportPair{Send: tc.SendPort, Receive: tc.ReceivePort}
	if err := o.transport.Cleanup(pair); err != nil {
		o.logger.Warn("Removing stale virtual ports: %v", err)
	}

	if err := os.Remove(tc.OutputFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale output %s: %w", tc.OutputFile, err)
	}
	return nil
}

func (o *Orchestrator) validate(tc domain.TestCase, report *domain.ValidationReport) bool {
	outcome, err := o.validator.Validate(tc.ValidationFile, tc.OutputFile)
	if err != nil {
		o.logger.Error("%v", err)
		report.Error = err.Error()
		return false
	}

	report.Match = outcome.Match
	if !outcome.Match {
		report.Expected = validation.Render(outcome.Expected)
		report.Actual = validation.Render(outcome.Actual)
		report.Diff = outcome.Diff
	}
	return outcome.Match
}

func (o *Orchestrator) finish(res domain.CaseResult, start time.Time) domain.CaseResult {
	res.Duration = time.Since(start)

	status := color.GreenString("OK")
	if !res.Passed {
		status = color.RedString("FAIL")
	}
	o.logger.Info("Test %s status: %s", res.Name, status)

	if !res.Passed && res.Validation.Requested && res.Validation.Error == "" && res.Error == "" {
		o.logger.Error("Expected output: \n%s", res.Validation.Expected)
		o.logger.Error("Actual output: \n%s", res.Validation.Actual)
		if res.Validation.Diff != "" {
			o.logger.Error("Difference (-expected +actual): \n%s", res.Validation.Diff)
		}
	}
	return res
}
