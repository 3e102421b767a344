package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/errhttp"
	"github.com/ghuser/homebook/pkg/httpx"
	appsvcs "github.com/ghuser/homebook/services/booking/application/services"
	bookingdomain "github.com/ghuser/homebook/services/booking/domain"
)

// GetBookingHandler handles GET /bookings/{id} requests.
type GetBookingHandler struct {
	svc *appsvcs.Services
}

// NewGetBookingHandler returns a GetBookingHandler backed by the given services.
func NewGetBookingHandler(svc *appsvcs.Services) *GetBookingHandler {
	return &GetBookingHandler{svc: svc}
}

// Execute returns one of the caller's bookings.
//
//	@Summary		Get booking
//	@Tags			bookings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Booking ID"
//	@Success		200	{object}	models.BookingRecord
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/bookings/{id} [get]
func (h *GetBookingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, bookingdomain.ErrBookingNotFound)
		return
	}

	b, err := h.svc.Booking.GetByID(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b.Record())
}
