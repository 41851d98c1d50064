package kanerva

import "github.com/pkg/errors"

// InvalidConfigError reports that a constructor parameter violated its
// stated domain (non-positive dimension, negative threshold, or a threshold
// outside [0, AddressDimension]).
type InvalidConfigError struct {
	cause error
}

func (e *InvalidConfigError) Error() string { return e.cause.Error() }

// Cause returns the underlying error, for github.com/pkg/errors.Cause.
func (e *InvalidConfigError) Cause() error { return e.cause }

func invalidConfigf(format string, args ...interface{}) error {
	return &InvalidConfigError{cause: errors.Errorf(format, args...)}
}

// InvalidArgumentError reports that a write/read call argument violated its
// length or binary-value constraint.
type InvalidArgumentError struct {
	cause error
}

func (e *InvalidArgumentError) Error() string { return e.cause.Error() }

// Cause returns the underlying error, for github.com/pkg/errors.Cause.
func (e *InvalidArgumentError) Cause() error { return e.cause }

func invalidArgumentf(format string, args ...interface{}) error {
	return &InvalidArgumentError{cause: errors.Errorf(format, args...)}
}

// IsInvalidConfig reports whether err is an *InvalidConfigError.
func IsInvalidConfig(err error) bool {
	_, ok := err.(*InvalidConfigError)
	return ok
}

// IsInvalidArgument reports whether err is an *InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	_, ok := err.(*InvalidArgumentError)
	return ok
}
