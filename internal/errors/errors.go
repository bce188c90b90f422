// Package errors defines the terminal error kinds of an import run.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a terminal failure
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindFileNotFound
	KindEnvFileInvalid
	KindContainerNotRunning
	KindMissingToken
	KindStoreUnreachable
	KindMountInvalid
	KindImportFailed
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFileNotFound:
		return "file not found"
	case KindEnvFileInvalid:
		return "env file invalid"
	case KindContainerNotRunning:
		return "container not running"
	case KindMissingToken:
		return "missing token"
	case KindStoreUnreachable:
		return "store unreachable"
	case KindMountInvalid:
		return "mount invalid"
	case KindImportFailed:
		return "import failed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks. They match any *Error of the same Kind.
var (
	ErrConfig              = &Error{Kind: KindConfig}
	ErrFileNotFound        = &Error{Kind: KindFileNotFound}
	ErrEnvFileInvalid      = &Error{Kind: KindEnvFileInvalid}
	ErrContainerNotRunning = &Error{Kind: KindContainerNotRunning}
	ErrMissingToken        = &Error{Kind: KindMissingToken}
	ErrStoreUnreachable    = &Error{Kind: KindStoreUnreachable}
	ErrMountInvalid        = &Error{Kind: KindMountInvalid}
	ErrImportFailed        = &Error{Kind: KindImportFailed}
)

// Error is a terminal run error carrying enough context for the operator to fix and re-run
type Error struct {
	Kind       Kind
	Message    string
	Details    string
	Suggestion string
	Err        error
}

func (e *Error) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	} else {
		parts = append(parts, e.Kind.String())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can use the package sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around a cause
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithDetails attaches backend output to the error
func (e *Error) WithDetails(details string) *Error {
	e.Details = strings.TrimSpace(details)
	return e
}

// WithSuggestion attaches a remediation hint to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// KindOf returns the kind of the first *Error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
