package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks an invalid or missing chart option.
	ErrInvalidConfig = errors.New("invalid chart configuration")
	// ErrDomain marks input whose shape cannot be rendered by the chart model.
	ErrDomain = errors.New("domain precondition violated")
	// ErrNotImplemented marks a decoration path that is not supported yet.
	ErrNotImplemented = errors.New("not implemented")
)

// ConfigError names the option that failed validation.
type ConfigError struct {
	Option string
	Msg    string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig.Error(), e.Option, e.Msg)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// DomainError reports a violated precondition of the rendering model.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrDomain.Error(), e.Msg)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func configf(option, format string, args ...any) error {
	return &ConfigError{Option: option, Msg: fmt.Sprintf(format, args...)}
}

func notImplemented(feature string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, feature)
}
