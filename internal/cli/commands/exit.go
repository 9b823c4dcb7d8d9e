package commands

import "fmt"

// ExitError carries a non-zero exit status that is not an error to print
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
