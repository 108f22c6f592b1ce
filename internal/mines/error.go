package mines

import (
	"errors"
	"fmt"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError reports board parameters that can never produce a playable
// game. It matches [ErrInvalidConfiguration] with [errors.Is].
type ConfigError struct {
	Params GameParams
	Reason string
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidConfiguration, e.Params, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
