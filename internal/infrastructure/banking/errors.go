package banking

import "fmt"

// APIError is returned when the bank answers with a non-2xx status.
// It carries the status and raw body so callers can branch on the status
// (e.g. 401 consent problems) and log the upstream payload.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("banking API returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request never produced an HTTP
// response: DNS failure, connection reset, timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("banking API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
