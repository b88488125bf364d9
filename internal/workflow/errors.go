package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOptions     = errors.New("invalid test options")
	ErrUnsupportedInstall = errors.New("unsupported install method")
	ErrNoPackages         = errors.New("package set is empty")
	ErrNoDatasets         = errors.New("dataset list is empty")
	ErrInvalidStep        = errors.New("invalid step")
	ErrInvalidJob         = errors.New("invalid job")
	ErrDuplicateJob       = errors.New("duplicate job id")
	ErrInvalidSchedule    = errors.New("invalid schedule")
)

// ConfigError reports a configuration field that cannot be turned into
// steps. It matches ErrInvalidOptions as well as its specific cause
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.cause())
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.cause(), e.Reason)
}

func (e ConfigError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrInvalidOptions {
		return []error{ErrInvalidOptions}
	}
	return []error{ErrInvalidOptions, e.Err}
}

func (e ConfigError) cause() error {
	if e.Err == nil {
		return ErrInvalidOptions
	}
	return e.Err
}
