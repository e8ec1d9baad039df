package dialectcsv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a dialect, line break, path or option is rejected at construction time.
	ErrInvalidConfiguration = errors.New("dialectcsv: invalid configuration")
	// ErrNotFound is returned when the stream or path cannot be opened, created or read.
	ErrNotFound = errors.New("dialectcsv: stream not found or unreadable")
	// ErrWrite is returned when a row cannot be serialized or the write is incomplete.
	ErrWrite = errors.New("dialectcsv: write error")
	// ErrInvalidDialect is returned when the detected line break is not supported for reading.
	ErrInvalidDialect = errors.New("dialectcsv: invalid dialect")
)

// Error carries the kind of failure (one of the Err* sentinels), a message and the optional underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// Error formats the message with the underlying cause when there is one.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("dialectcsv: %s: %v", e.Msg, e.Err)
	}
	return "dialectcsv: " + e.Msg
}

// Unwrap exposes both Kind and Err so errors.Is matches either of them.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func configError(format string, args ...any) error {
	return &Error{Kind: ErrInvalidConfiguration, Msg: fmt.Sprintf(format, args...)}
}

func notFoundError(msg string, err error) error {
	return &Error{Kind: ErrNotFound, Msg: msg, Err: err}
}

func writeError(msg string, err error) error {
	return &Error{Kind: ErrWrite, Msg: msg, Err: err}
}
