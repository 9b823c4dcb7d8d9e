package sender

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"systest/internal/domain"
	"systest/internal/logging"
)

const (
	DefaultPort     = "/dev/ttyACM0"
	DefaultBaudrate = 9600
)

// Options configures a Sender
type Options struct {
	Port          string
	Baudrate      int
	SentencesFile string
	LinePeriod    time.Duration
	Continuous    bool
}

// Sender writes the lines of a sentences file to a serial port
type Sender struct {
	opts   Options
	logger logging.Logger
}

// New creates a new Sender
func New(opts Options, logger logging.Logger) *Sender {
	if opts.Port == "" {
		opts.Port = DefaultPort
	}
	if opts.Baudrate == 0 {
		opts.Baudrate = DefaultBaudrate
	}
	return &Sender{opts: opts, logger: logger}
}

// ReadLines reads path keeping every line terminator
func ReadLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewConfigError("read sentences", path, "invalid file")
		}
		return nil, &domain.ConfigError{Op: "read sentences", Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sentences file: %w", err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read sentences file: %w", err)
		}
	}
}

// Run reads the sentences file, opens the port and sends. Failing to read the
// file or open the port is an error. A failed write ends sending and is only
// logged, as the other end going away is how a continuous run normally ends.
func (s *Sender) Run(ctx context.Context) error {
	lines, err := ReadLines(s.opts.SentencesFile)
	if err != nil {
		return err
	}

	port, err := openPort(s.opts.Port, s.opts.Baudrate)
	if err != nil {
		return fmt.Errorf("open serial port %s: %w", s.opts.Port, err)
	}
	defer port.Close()

	if err := s.Send(ctx, port, lines); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Exception caught: %v", err)
	}
	return nil
}

// Send writes lines to w, sleeping the line period after each one. With
// Continuous set it starts over until ctx is done.
func (s *Sender) Send(ctx context.Context, w io.Writer, lines []string) error {
	for {
		for _, line := range lines {
			s.logger.Debug("Sending %s", strings.TrimRight(line, " \t\r\n"))
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
			if err := pause(ctx, s.opts.LinePeriod); err != nil {
				return err
			}
		}
		if !s.opts.Continuous || len(lines) == 0 {
			return nil
		}
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
