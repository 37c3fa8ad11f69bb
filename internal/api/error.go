package api

import "fmt"

// Category classifies every failure the API client can produce.
// The client never recovers from errors itself; it classifies them and hands
// them to the caller, which decides the user-facing message and exit code.
type Category string

const (
	// InvalidArgument means the request was rejected locally, before any network I/O.
	InvalidArgument Category = "invalid argument"
	// Rejected means the server answered with a 4xx status (bad API key, bad payload).
	Rejected Category = "rejected"
	// Unavailable means the request never got a usable answer: transport failure,
	// timeout, or a 5xx status from the server.
	Unavailable Category = "unavailable"
	// Protocol means the server answered 2xx but the body could not be parsed.
	Protocol Category = "protocol"
)

// Error is the typed failure returned by every API client call.
// StatusCode is zero when no HTTP status was received (transport errors,
// timeouts and locally rejected requests).
type Error struct {
	Category   Category
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Category, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// errorf builds an *Error with a formatted message.
func errorf(cat Category, status int, format string, a ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, a...), StatusCode: status}
}
