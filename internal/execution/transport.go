package execution

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"systest/internal/domain"
	"systest/internal/logging"
)

// TransportPair is the two endpoint paths linked by the pairing process
type TransportPair struct {
	Send    string
	Receive string
}

// Paths returns both endpoint paths
func (p TransportPair) Paths() []string {
	return []string{p.Send, p.Receive}
}

func (p TransportPair) ready() bool {
	return isSymlink(p.Send) && isSymlink(p.Receive)
}

// TransportNotReadyError is returned when the endpoints never became live links
type TransportNotReadyError struct {
	Pair   TransportPair
	Waited time.Duration
	Reason string
	Err    error
}

func (e *TransportNotReadyError) Error() string {
	return fmt.Sprintf("transport %s <-> %s not ready after %s: %s",
		e.Pair.Send, e.Pair.Receive, e.Waited.Round(time.Millisecond), e.Reason)
}

func (e *TransportNotReadyError) Unwrap() error { return e.Err }

// TransportManager creates a linked pseudo-terminal pair with an external program
type TransportManager struct {
	app           string
	readyInterval time.Duration
	logger        logging.Logger
}

// NewTransportManager creates a new TransportManager running app (socat)
func NewTransportManager(app string, readyInterval time.Duration, logger logging.Logger) *TransportManager {
	if readyInterval <= 0 {
		readyInterval = 100 * time.Millisecond
	}
	return &TransportManager{
		app:           app,
		readyInterval: readyInterval,
		logger:        logger,
	}
}

func (m *TransportManager) command(pair TransportPair) command {
	return command{
		path: m.app,
		args: []string{
			"pty,rawer,link=" + pair.Send,
			"pty,rawer,link=" + pair.Receive,
		},
	}
}

// Pair runs the pairing process for at most ttl. The result is only successful when
// the process exits on its own within ttl; a killed pairing process is a failure.
func (m *TransportManager) Pair(ctx context.Context, pair TransportPair, ttl time.Duration) domain.RunResult {
	c := m.command(pair)
	m.logger.Debug("Creating virtual ports. Command: '%s'", c)

	res := supervise(ctx, domain.RunnerTransport, c, ttl, killNow)
	res.Success = res.Started && !res.TimedOut && res.Error == ""

	logCaptured(m.logger, res)
	switch {
	case !res.Started:
		m.logger.Error("Could not create virtual ports: %s", res.Error)
	case res.TimedOut:
		m.logger.Debug("Virtual ports closed after %s", ttl)
	}
	return res
}

// WaitReady polls until both endpoints exist as links. It gives up after timeout,
// when exited is closed before the links appear, or when ctx is done.
func (m *TransportManager) WaitReady(ctx context.Context, pair TransportPair, timeout time.Duration, exited <-chan struct{}) error {
	start := time.Now()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(m.readyInterval)
	defer ticker.Stop()

	notReady := func(reason string, err error) error {
		return &TransportNotReadyError{Pair: pair, Waited: time.Since(start), Reason: reason, Err: err}
	}

	for {
		if pair.ready() {
			m.logger.Debug("Virtual ports ready after %s", time.Since(start).Round(time.Millisecond))
			return nil
		}
		m.logger.Debug("Waiting for ports to be opened")

		select {
		case <-ticker.C:
		case <-exited:
			if pair.ready() {
				return nil
			}
			return notReady("pairing process exited", nil)
		case <-deadline.C:
			return notReady("timed out", nil)
		case <-ctx.Done():
			return notReady("interrupted", ctx.Err())
		}
	}
}

// Cleanup unlinks both endpoints. Paths that are already gone are not an error;
// paths that exist but are not links are left alone and reported.
func (m *TransportManager) Cleanup(pair TransportPair) error {
	var errs []error
	for _, p := range pair.Paths() {
		if err := removeLink(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

func removeLink(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return fmt.Errorf("%s exists and is not a link", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
