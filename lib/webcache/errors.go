package webcache

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the remote server confirms the webpage
// is absent (HTTP 404). Match it with errors.Is.
var ErrNotFound = errors.New("webpage not found")

// TransportError reports a failure below the HTTP response layer: DNS
// resolution, connection refused, timeout. Match it with errors.As.
type TransportError struct {
	Url string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure fetching %s: %s", e.Url, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
