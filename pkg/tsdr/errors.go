package tsdr

import (
	"fmt"
)

// registerMarker is the body fragment USPTO returns when the key is missing
// or not registered.
const registerMarker = "need to register for an API key"

// ErrorKind classifies a failed upstream request.
type ErrorKind string

const (
	// ErrUpstream is any non-2xx response.
	ErrUpstream ErrorKind = "upstream"
	// ErrAuth is a non-2xx response asking the caller to register for a key.
	ErrAuth ErrorKind = "upstream_auth"
	// ErrTransport means no usable response was received.
	ErrTransport ErrorKind = "transport"
)

// Error describes a failed TSDR request.
type Error struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	StatusText string
	Body       string
	// KeyHint is the redacted API key that was sent, for remediation messages.
	KeyHint string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == ErrTransport {
		return e.Err.Error()
	}

	return fmt.Sprintf("USPTO API returned %d: %s. Error: %s", e.StatusCode, e.StatusText, e.Body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RedactKey keeps the first four characters of key. Keys of four characters
// or fewer are fully masked.
func RedactKey(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 4 {
		return "****"
	}

	return key[:4] + "..."
}
