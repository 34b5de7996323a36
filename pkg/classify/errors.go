package classify

import (
	"errors"
	"fmt"
)

const (
	errorCodeSourceRequired  = "CATALOG_SOURCE_REQUIRED"
	errorCodeSourceConflict  = "CATALOG_SOURCE_CONFLICT"
	errorCodeSignalsRequired = "SIGNALS_REQUIRED"
	errorCodeSyncFailed      = "CATALOG_SYNC_FAILED"
)

var (
	// ErrSourceRequired indicates neither --file nor --url was provided.
	ErrSourceRequired = errors.New("source required")
	// ErrSourceConflict indicates both --file and --url were provided.
	ErrSourceConflict = errors.New("multiple sources provided")
	// ErrSignalsRequired indicates no signal bundle was supplied to classify.
	ErrSignalsRequired = errors.New("signals required")
)

type errorCoder interface {
	error
	Code() string
}

type withCodeError struct {
	error
	code string
}

func (e *withCodeError) Code() string { return e.code }

func (e *withCodeError) Unwrap() error { return e.error }

// WithErrorCode annotates err with a classification error code.
func WithErrorCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &withCodeError{error: err, code: code}
}

// NewSourceRequiredError formats a missing catalog source error.
func NewSourceRequiredError() error {
	return WithErrorCode(fmt.Errorf("%w: either --file or --url must be provided", ErrSourceRequired), errorCodeSourceRequired)
}

// NewSourceConflictError formats a conflicting catalog source error.
func NewSourceConflictError() error {
	return WithErrorCode(fmt.Errorf("%w: only one of --file or --url may be provided at a time", ErrSourceConflict), errorCodeSourceConflict)
}

// NewSignalsRequiredError formats a missing signal bundle error.
func NewSignalsRequiredError() error {
	return WithErrorCode(fmt.Errorf("%w: provide a signal bundle via --signals or stdin", ErrSignalsRequired), errorCodeSignalsRequired)
}

// WrapSyncError annotates a catalog sync failure.
func WrapSyncError(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(err, errorCodeSyncFailed)
}

// ErrorCode resolves an error to its classification error code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var coded errorCoder
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, ErrSourceRequired):
		return errorCodeSourceRequired
	case errors.Is(err, ErrSourceConflict):
		return errorCodeSourceConflict
	case errors.Is(err, ErrSignalsRequired):
		return errorCodeSignalsRequired
	default:
		return errorCodeSyncFailed
	}
}

// ExitCode maps classification errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, ErrSourceRequired),
		errors.Is(err, ErrSourceConflict),
		errors.Is(err, ErrSignalsRequired):
		return 2
	default:
		return 1
	}
}

// Suggestions provides CLI hints for classification errors.
func Suggestions(err error) []string {
	if err == nil {
		return nil
	}

	switch ErrorCode(err) {
	case errorCodeSourceRequired:
		return []string{
			"Provide a source:          --file <path> or --url <address>",
			"Example:                   uasense rules sync --url https://example/rules.yaml",
		}
	case errorCodeSourceConflict:
		return []string{
			"Use only one source flag",
			"Remove either --file or --url",
		}
	case errorCodeSignalsRequired:
		return []string{
			"Provide a signal bundle:   uasense classify --signals probe.yaml",
			"Or pipe it:                cat probe.yaml | uasense classify",
		}
	case errorCodeSyncFailed:
		return []string{
			"Retry with --url pointing to a reachable catalog",
			"Check network connectivity and cache directory permissions",
		}
	default:
		return nil
	}
}
