//go:build windows

package execution

import (
	"os/exec"
	"syscall"
)

func configureProcAttr(cmd *exec.Cmd) {}

// signalGroup can only kill on windows
func signalGroup(cmd *exec.Cmd, _ syscall.Signal) error {
	return cmd.Process.Kill()
}
