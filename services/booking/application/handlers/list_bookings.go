package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/errhttp"
	"github.com/ghuser/homebook/pkg/httpx"
	appsvcs "github.com/ghuser/homebook/services/booking/application/services"
	"github.com/ghuser/homebook/services/booking/domain/models"
	"github.com/ghuser/homebook/services/booking/domain/repositories"
)

// ListBookingsHandler handles GET /bookings requests.
type ListBookingsHandler struct {
	svc *appsvcs.Services
}

// NewListBookingsHandler returns a ListBookingsHandler backed by the given services.
func NewListBookingsHandler(svc *appsvcs.Services) *ListBookingsHandler {
	return &ListBookingsHandler{svc: svc}
}

// Execute lists the caller's bookings, newest first.
//
//	@Summary		List bookings
//	@Description	Lists the caller's bookings, optionally filtered by status
//	@Tags			bookings
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status	query		string	false	"Filter by status"	Enums(pending, confirmed, scheduled, in-progress, completed, cancelled)
//	@Param			limit	query		int		false	"Page size (default 20, max 100)"
//	@Param			offset	query		int		false	"Records to skip"
//	@Success		200		{object}	models.BookingList
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/bookings [get]
func (h *ListBookingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	q := r.URL.Query()
	limit, ok := intParam(q.Get("limit"))
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, ok := intParam(q.Get("offset"))
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	bookings, total, err := h.svc.Booking.List(r.Context(), userID, repositories.QueryOpts{
		Limit:  limit,
		Offset: offset,
		Status: models.Status(q.Get("status")),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := models.BookingList{Bookings: make([]models.BookingRecord, len(bookings)), Total: total}
	for i, b := range bookings {
		resp.Bookings[i] = *b.Record()
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func intParam(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
