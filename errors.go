package quill

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMissingMasker indicates a log.mask tag names a strategy that
	// is not registered.
	ErrMissingMasker = errors.New("missing masker")
)

// ConfigError reports a masking directive that cannot be honored.
// Serialize degrades to "" when one is hit; Validate returns it.
type ConfigError struct {
	Err      error  // Underlying sentinel error
	Field    string // Qualified field name that triggered the error
	Strategy string // Strategy name that was missing
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Strategy != "" {
		return fmt.Sprintf("%s for strategy %q (field %s)", e.Err.Error(), e.Strategy, e.Field)
	}
	if e.Strategy != "" {
		return fmt.Sprintf("%s for strategy %q", e.Err.Error(), e.Strategy)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for missing strategy scenarios.
func newConfigError(sentinel error, strategy, field string) error {
	return &ConfigError{
		Err:      sentinel,
		Strategy: strategy,
		Field:    field,
	}
}
