package execution

import (
	"context"
	"strconv"
	"time"

	"systest/internal/domain"
	"systest/internal/logging"
)

// ProducerOptions are optional producer settings, only forwarded when set
type ProducerOptions struct {
	Baudrate   int
	LinePeriod time.Duration
	Continuous bool
}

// ProducerRunner invokes the line-sending program against the send endpoint
type ProducerRunner struct {
	interpreter string
	debug       bool
	logger      logging.Logger
}

// NewProducerRunner creates a new ProducerRunner. interpreter may be empty when the
// producer is directly executable.
func NewProducerRunner(interpreter string, debug bool, logger logging.Logger) *ProducerRunner {
	return &ProducerRunner{
		interpreter: interpreter,
		debug:       debug,
		logger:      logger,
	}
}

func (r *ProducerRunner) command(app, sentencesFile, sendPath string, opts ProducerOptions) command {
	var args []string
	path := app
	if r.interpreter != "" {
		path = r.interpreter
		args = append(args, app)
	}
	args = append(args, "--sentences_file", sentencesFile, "--serial_port", sendPath)
	if opts.Baudrate > 0 {
		args = append(args, "--baudrate", strconv.Itoa(opts.Baudrate))
	}
	if opts.LinePeriod > 0 {
		args = append(args, "--line_period", strconv.FormatFloat(opts.LinePeriod.Seconds(), 'f', -1, 64))
	}
	if opts.Continuous {
		args = append(args, "--continuous")
	}
	if r.debug {
		args = append(args, "--debug")
	}
	return command{path: path, args: args}
}

// Send runs the producer for at most ttl. An overrunning producer is killed.
func (r *ProducerRunner) Send(ctx context.Context, app, sentencesFile, sendPath string, ttl time.Duration, opts ProducerOptions) domain.RunResult {
	c := r.command(app, sentencesFile, sendPath, opts)
	r.logger.Debug("Running producer application. Command: '%s'", c)

	res := supervise(ctx, domain.RunnerProducer, c, ttl, killNow)

	logCaptured(r.logger, res)
	switch {
	case !res.Started:
		r.logger.Error("Could not start producer: %s", res.Error)
	case res.TimedOut:
		r.logger.Debug("Producer killed after %s", ttl)
	case res.ExitCode != 0:
		r.logger.Warn("Producer exited with status %d", res.ExitCode)
	}
	return res
}
