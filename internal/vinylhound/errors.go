package vinylhound

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/five82/crate/internal/catalog"
)

var (
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("vinylhound: transport failure")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("vinylhound: invalid request")
)

// HTTPError is returned for any response outside 2xx.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       catalog.Value
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("vinylhound: status %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps a failure that happened before any HTTP status was
// received: DNS, refused connections, timeouts, cancellation.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("vinylhound: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ValidationError reports a request rejected locally, before the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("vinylhound: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// errorMessage picks the most useful text for a failed response: the JSON
// "error" field, then "message", then the raw body, then the status line.
func errorMessage(status int, body catalog.Value) string {
	for _, field := range []string{"error", "message"} {
		if msg, ok := body.Field(field).Text(); ok {
			return msg
		}
	}
	if raw, ok := body.Text(); ok && body.Kind() == catalog.KindString {
		return raw
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
