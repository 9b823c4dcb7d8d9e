package execution

import (
	"context"
	"syscall"
	"time"

	"systest/internal/domain"
	"systest/internal/logging"
)

// ConsumerRunner invokes the application under test against the receive endpoint
type ConsumerRunner struct {
	killGrace time.Duration
	logger    logging.Logger
}

// NewConsumerRunner creates a new ConsumerRunner. killGrace is how long a terminated
// consumer may take to exit before it is killed.
func NewConsumerRunner(killGrace time.Duration, logger logging.Logger) *ConsumerRunner {
	return &ConsumerRunner{
		killGrace: killGrace,
		logger:    logger,
	}
}

func (r *ConsumerRunner) command(app, receivePath, outputFile string) command {
	return command{
		path: app,
		args: []string{"--serial_port", receivePath, "--output_file", outputFile},
	}
}

// Receive runs the consumer for at most ttl. On overrun it is asked to terminate,
// then killed after the grace period; whatever it printed before is kept.
// Success requires exit status 0 within ttl.
func (r *ConsumerRunner) Receive(ctx context.Context, app, receivePath, outputFile string, ttl time.Duration) domain.RunResult {
	c := r.command(app, receivePath, outputFile)
	r.logger.Debug("Running consumer application. Command: '%s'", c)

	res := supervise(ctx, domain.RunnerConsumer, c, ttl, stopPolicy{
		signal: syscall.SIGTERM,
		grace:  r.killGrace,
	})

	logCaptured(r.logger, res)
	switch {
	case !res.Started:
		r.logger.Error("Could not start consumer: %s", res.Error)
	case res.TimedOut:
		r.logger.Warn("Consumer did not finish within %s and was terminated", ttl)
	case res.ExitCode != 0:
		r.logger.Debug("Consumer exited with status %d", res.ExitCode)
	}
	return res
}
