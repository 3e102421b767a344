package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/errhttp"
	"github.com/ghuser/homebook/pkg/httpx"
	pkgvalidator "github.com/ghuser/homebook/pkg/validator"
	appsvcs "github.com/ghuser/homebook/services/booking/application/services"
	"github.com/ghuser/homebook/services/booking/domain/models"
)

// IdempotencyKeyHeader scopes retries of one create request.
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLen bounds the header value stored with each booking.
const maxIdempotencyKeyLen = 255

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Message string `json:"message" example:"slot unavailable"`
} // @name BookingErrorResponse

// PostBookingHandler handles POST /bookings requests.
type PostBookingHandler struct {
	svc *appsvcs.Services
}

// NewPostBookingHandler returns a PostBookingHandler backed by the given services.
func NewPostBookingHandler(svc *appsvcs.Services) *PostBookingHandler {
	return &PostBookingHandler{svc: svc}
}

// Execute creates a booking for the caller.
//
//	@Summary		Create booking
//	@Description	Creates a pending booking. Repeating a request with the same Idempotency-Key returns the stored booking with 200.
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Idempotency-Key	header		string					false	"Client-generated key identifying this create request"
//	@Param			request			body		models.BookingRequest	true	"Booking request"
//	@Success		201				{object}	models.BookingRecord
//	@Success		200				{object}	models.BookingRecord
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/bookings [post]
func (h *PostBookingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		httpx.JSONError(w, http.StatusBadRequest, "Idempotency-Key is too long")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[models.BookingRequest](w, r)
	if !ok {
		return
	}

	b, created, err := h.svc.Booking.Create(r.Context(), userID, key, *req)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	httpx.JSON(w, status, b.Record())
}
