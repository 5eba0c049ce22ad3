package api

import "fmt"

// TransportError means the request never produced a usable server response:
// the network was unreachable, the request timed out, or the body could not
// be decoded as an API envelope.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError means the server answered but rejected the request,
// either with a non-2xx status or a success:false envelope. Message carries
// the server's human-readable explanation.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}
