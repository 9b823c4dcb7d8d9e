package execution

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"systest/internal/domain"
	"systest/internal/logging"
)

// pipeWaitDelay bounds how long Wait keeps draining pipes held open by
// orphaned descendants after the process itself has exited.
const pipeWaitDelay = 2 * time.Second

// command is an explicit argument vector, never passed through a shell
type command struct {
	path string
	args []string
}

func (c command) String() string {
	return strings.Join(append([]string{c.path}, c.args...), " ")
}

// stopPolicy says how an overrunning process group is stopped.
// A zero grace kills it right away.
type stopPolicy struct {
	signal syscall.Signal
	grace  time.Duration
}

var killNow = stopPolicy{}

// supervise starts c in its own process group and waits until it exits, ttl
// elapses or ctx is done. Success is only set for a clean exit within ttl.
func supervise(ctx context.Context, runner string, c command, ttl time.Duration, stop stopPolicy) domain.RunResult {
	res := domain.RunResult{Runner: runner, ExitCode: -1}

	stdout := newBoundedBuffer(maxCapture)
	stderr := newBoundedBuffer(maxCapture)

	cmd := exec.Command(c.path, c.args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = pipeWaitDelay
	configureProcAttr(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		res.Error = fmt.Sprintf("start %s: %v", c.path, err)
		return res
	}
	res.Started = true
	res.PID = cmd.Process.Pid

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(ttl)
	defer timer.Stop()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-timer.C:
		res.TimedOut = true
		waitErr = terminate(cmd, done, stop)
	case <-ctx.Done():
		res.Error = ctx.Err().Error()
		waitErr = terminate(cmd, done, killNow)
	}

	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if waitErr != nil && res.Error == "" && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		res.Error = waitErr.Error()
	}

	res.Success = !res.TimedOut && res.Error == "" && res.ExitCode == 0
	return res
}

// terminate stops the process group according to stop and returns the Wait result.
// It never returns before the process has been reaped.
func terminate(cmd *exec.Cmd, done <-chan error, stop stopPolicy) error {
	if stop.grace > 0 && stop.signal != 0 {
		if err := signalGroup(cmd, stop.signal); err == nil {
			select {
			case err := <-done:
				// Take down anything the process left behind in its group
				_ = signalGroup(cmd, syscall.SIGKILL)
				return err
			case <-time.After(stop.grace):
			}
		}
	}
	_ = signalGroup(cmd, syscall.SIGKILL)
	return <-done
}

// logCaptured reports captured streams: stderr as errors, stdout as debug
func logCaptured(logger logging.Logger, res domain.RunResult) {
	logging.LogLines(logger.Error, res.Stderr)
	logging.LogLines(logger.Debug, res.Stdout)
}

// sleepCtx waits for d and reports false if ctx ended first
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
