package data

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches any *ConfigError.
	ErrConfig = errors.New("invalid batch shape")
	// ErrInsufficientData matches any *InsufficientDataError.
	ErrInsufficientData = errors.New("insufficient tokens")
	// ErrSourceUnavailable matches any *SourceUnavailableError.
	ErrSourceUnavailable = errors.New("token source unavailable")
)

// ConfigError is returned when the batch size or sequence length is not positive.
type ConfigError struct {
	BatchSize int
	SeqLength int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"batch size and sequence length must be positive, got B=%d T=%d",
		e.BatchSize,
		e.SeqLength,
	)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// InsufficientDataError is returned when the token stream cannot hold a single batch.
type InsufficientDataError struct {
	Tokens    int
	Required  int
	BatchSize int
	SeqLength int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf(
		"corpus has %d tokens, need at least %d for B=%d T=%d (B*T+1)",
		e.Tokens,
		e.Required,
		e.BatchSize,
		e.SeqLength,
	)
}

// Is reports whether target is ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// SourceUnavailableError wraps the I/O failure of a token source.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSourceUnavailable.
func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }
