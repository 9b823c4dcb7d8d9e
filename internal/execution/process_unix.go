//go:build !windows

package execution

import (
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcAttr runs the command in its own process group so the whole
// tree (interpreters, helpers) can be signalled at once.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// signalGroup sends sig to the process group led by cmd, falling back to the
// process itself.
func signalGroup(cmd *exec.Cmd, sig syscall.Signal) error {
	pid := cmd.Process.Pid
	if err := unix.Kill(-pid, sig); err != nil {
		if err2 := cmd.Process.Signal(sig); err2 != nil {
			return fmt.Errorf("signal process group -%d: %v, process %d: %v", pid, err, pid, err2)
		}
	}
	return nil
}
