package client

import "fmt"

type ErrorKind string

const (
	// KindTransport covers failures before any server answer arrived:
	// dial errors, timeouts, malformed responses.
	KindTransport ErrorKind = "transport"
	// KindAPI covers non-2xx answers carrying the server's error envelope.
	KindAPI ErrorKind = "api"
)

// APIError is the single error type callers see from this package.
type APIError struct {
	Kind      ErrorKind
	Status    int
	ErrorCode string
	Message   string
	Errors    map[string][]string
	Err       error
}

func (e *APIError) Error() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.ErrorCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func transportErr(err error) *APIError {
	return &APIError{Kind: KindTransport, Err: err}
}
