package config

import (
	"errors"
	"fmt"
)

var ErrUnknownMode = errors.New("unknown mode")

// ConfigurationError reports a configuration that must not be used.
type ConfigurationError struct {
	Mode Mode
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error (%s): %v", e.Mode, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func newConfigurationError(mode Mode, err error) *ConfigurationError {
	return &ConfigurationError{Mode: mode, Err: err}
}
