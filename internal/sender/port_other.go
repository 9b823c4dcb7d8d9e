//go:build !linux

package sender

import "os"

// openPort opens path for writing. Line settings are left to the system.
func openPort(path string, _ int) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY, 0)
}
