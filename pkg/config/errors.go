// pkg/config/errors.go
package config

import "fmt"

// ConfigError reports a missing or malformed configuration entry. The
// pipeline fails fast on these rather than surfacing a deep stack trace
// from an unrelated stage.
type ConfigError struct {
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// NewConfigError creates a ConfigError for the given key.
func NewConfigError(key, format string, args ...any) *ConfigError {
	return &ConfigError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
