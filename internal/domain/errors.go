package domain

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every configuration error
var ErrConfig = errors.New("configuration error")

// ConfigError describes invalid or missing configuration input.
// Unlike a failing test it aborts the operation that hit it.
type ConfigError struct {
	Op   string // what was being done, e.g. "load suite"
	Path string // offending file or test name
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfig) hold for any ConfigError
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError builds a ConfigError with a formatted cause
func NewConfigError(op, path, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}
