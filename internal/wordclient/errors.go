package wordclient

import (
	"errors"
	"fmt"
)

// Error classes returned by the client. Use errors.Is to test for them.
var (
	// ErrNetwork indicates a transport failure: the request could not be
	// sent, the server answered with a non-2xx status or an undecodable body.
	ErrNetwork = errors.New("network error")

	// ErrAuth indicates the server requires re-authentication. It is fatal
	// to the session.
	ErrAuth = errors.New("authentication required")

	// ErrRejected indicates the server answered ok=false with a non-auth code.
	ErrRejected = errors.New("request rejected by server")

	// ErrInvalidResponse indicates the envelope was well-formed but its data
	// failed validation.
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError describes a failed client operation.
type APIError struct {
	// Op is the operation that failed, e.g. "fetch batch".
	Op string
	// Code is the server's error code when the server supplied one.
	Code string
	// Err wraps one of the Err* classes and, where available, the cause.
	Err error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %v (code %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAuth reports whether err requires the user to re-authenticate.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}
