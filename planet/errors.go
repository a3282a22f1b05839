package planet

import "fmt"

// HTTPError is a non-2xx response from the Planet API or the proxy. Message
// holds the raw response body so it can be surfaced verbatim.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// TransportError is a network failure before any response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
