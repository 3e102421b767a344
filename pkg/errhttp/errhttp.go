// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add an entry to mappings for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/httpx"
	authdomain "github.com/ghuser/homebook/services/auth/domain"
	bookingdomain "github.com/ghuser/homebook/services/booking/domain"
)

// InternalMessage replaces the message of any unmapped error.
const InternalMessage = "internal server error"

type mapping struct {
	sentinel error
	status   int
}

var mappings = []mapping{
	{bookingdomain.ErrBookingNotFound, http.StatusNotFound},             // 404
	{bookingdomain.ErrSlotUnavailable, http.StatusUnprocessableEntity},  // 422
	{bookingdomain.ErrInvalidBooking, http.StatusUnprocessableEntity},   // 422
	{bookingdomain.ErrNotCancellable, http.StatusConflict},              // 409
	{bookingdomain.ErrDuplicateRequest, http.StatusConflict},            // 409
	{authdomain.ErrInvalidPhone, http.StatusUnprocessableEntity},        // 422
	{authdomain.ErrInvalidOTP, http.StatusBadRequest},                   // 400
	{authdomain.ErrOTPAttemptsExceeded, http.StatusTooManyRequests},     // 429
	{auth.ErrUserIDNotFound, http.StatusUnauthorized},                   // 401
	{auth.ErrInvalidToken, http.StatusUnauthorized},                     // 401
}

// WriteError maps err to an HTTP status code and writes a {"message": ...}
// response. Uses errors.Is() so wrapped sentinel errors are matched correctly.
// The message is the sentinel's own text, so wrapping detail never reaches
// the client. Unrecognized errors become 500 with InternalMessage.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := Map(err)
	httpx.JSONError(w, status, msg)
}

// Map returns the status code and client message for err.
func Map(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return m.status, m.sentinel.Error()
		}
	}
	return http.StatusInternalServerError, InternalMessage
}
