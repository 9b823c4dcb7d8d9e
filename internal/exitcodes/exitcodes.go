// Package exitcodes defines the exit codes used by systest.
package exitcodes

// Exit code constants used by systest:
//
// * Success (0): every selected test passed
// * ConfigError (1): the suite could not be loaded or a requested test does not exist
// * any other value: the number of failed tests, capped at MaxFailures
const (
	Success     = 0   // All tests pass
	ConfigError = 1   // Configuration errors
	MaxFailures = 125 // Above this shells report signals and exec failures
)

// FromFailures maps a failed test count to an exit code
func FromFailures(failed int) int {
	switch {
	case failed <= 0:
		return Success
	case failed > MaxFailures:
		return MaxFailures
	default:
		return failed
	}
}
