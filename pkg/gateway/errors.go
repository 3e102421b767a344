package gateway

import (
	"errors"
	"fmt"
)

// User-visible fallbacks for failures that carry no server message.
const (
	NetworkMessage      = "Network error. Please check your connection."
	ServerMessage       = "An error occurred"
	UnauthorizedMessage = "Session expired. Please log in again."
)

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrUnauthorized = errors.New("gateway: unauthorized")
	ErrNetwork      = errors.New("gateway: network error")
	ErrServer       = errors.New("gateway: server error")
	// ErrInvalidRequest wraps a request that could not be encoded or built.
	// It is returned as is, never as *Error, and never retried.
	ErrInvalidRequest = errors.New("gateway: invalid request")
)

// Kind classifies a failed request.
type Kind int

const (
	KindServer Kind = iota
	KindNetwork
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "server"
	}
}

// Error is returned by Client.Do for every failed request.
// Status is zero for network errors. Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Attempts is how many times the request was sent.
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway: %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("gateway: %s error: %s", e.Kind, e.Message)
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	}
	return false
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the user-visible message carried by a gateway error, or
// fallback when err is not one.
func Message(err error, fallback string) string {
	var ge *Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return fallback
}

// StatusCode returns the HTTP status of a gateway error, or 0.
func StatusCode(err error) int {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Status
	}
	return 0
}
