package tools

import (
	"errors"
	"fmt"

	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// ErrorKind classifies a failed invocation.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConfiguration ErrorKind = "configuration"
	KindUpstreamAuth  ErrorKind = "upstream_auth"
	KindUpstream      ErrorKind = "upstream"
	KindTransport     ErrorKind = "transport"
	KindInternal      ErrorKind = "internal"
)

// Standard errors for consistent error handling
var (
	ErrMissingAPIKey = errors.New("USPTO API key is not configured")
	ErrInternal      = errors.New("internal server error")
)

// SupportEmail is the USPTO contact for API key problems.
const SupportEmail = "APIhelp@uspto.gov"

// MissingAPIKeyMessage is returned, unchanged, by every tool while no key is
// configured.
const MissingAPIKeyMessage = `USPTO API key is not configured.

Set the USPTO_API_KEY environment variable and restart the server.
API keys are issued through the USPTO API Manager: https://account.uspto.gov/api-manager/`

// Error is the failure side of a Result.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Detail: err.Error(), Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message renders the caller-facing text for the error.
func (e *Error) Message() string {
	switch e.Kind {
	case KindValidation:
		return "Invalid arguments: " + e.Detail
	case KindConfiguration:
		return MissingAPIKeyMessage
	case KindUpstreamAuth:
		return authMessage(e.Err)
	case KindUpstream:
		return e.Detail
	case KindTransport:
		return "Error fetching data from USPTO: " + e.Detail
	default:
		return "Internal error: " + e.Detail
	}
}

// Classify maps any error returned by a handler onto an Error.
func Classify(err error) *Error {
	var (
		toolErr     *Error
		validateErr *validate.Error
		tsdrErr     *tsdr.Error
	)

	switch {
	case errors.As(err, &toolErr):
		return toolErr
	case errors.As(err, &validateErr):
		return NewError(KindValidation, validateErr)
	case errors.Is(err, ErrMissingAPIKey):
		return NewError(KindConfiguration, err)
	case errors.As(err, &tsdrErr):
		switch tsdrErr.Kind {
		case tsdr.ErrAuth:
			return NewError(KindUpstreamAuth, tsdrErr)
		case tsdr.ErrTransport:
			return NewError(KindTransport, tsdrErr)
		default:
			return NewError(KindUpstream, tsdrErr)
		}
	}

	return NewError(KindInternal, err)
}

func authMessage(err error) string {
	keyHint := tsdr.RedactKey("")

	var tsdrErr *tsdr.Error
	if errors.As(err, &tsdrErr) {
		keyHint = tsdrErr.KeyHint
	}

	return fmt.Sprintf(`USPTO API authentication failed.

The USPTO API rejected the configured API key (%s) and reports that you need to register for an API key.

To resolve this:
1. Sign in to the USPTO API Manager at https://account.uspto.gov/api-manager/
2. Request or renew a key for the TSDR API
3. Set USPTO_API_KEY to the new key and restart the server

If the key is registered and still rejected, contact %s.`, keyHint, SupportEmail)
}
