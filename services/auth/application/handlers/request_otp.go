package handlers

import (
	"net/http"

	"github.com/ghuser/homebook/pkg/errhttp"
	"github.com/ghuser/homebook/pkg/httpx"
	pkgvalidator "github.com/ghuser/homebook/pkg/validator"
	appsvcs "github.com/ghuser/homebook/services/auth/application/services"
	"github.com/ghuser/homebook/services/auth/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Message string `json:"message" example:"invalid or expired OTP"`
} // @name ErrorResponse

// RequestOTPHandler handles POST /auth/request-otp requests.
type RequestOTPHandler struct {
	svc *appsvcs.Services
}

// NewRequestOTPHandler returns a RequestOTPHandler backed by the given services.
func NewRequestOTPHandler(svc *appsvcs.Services) *RequestOTPHandler {
	return &RequestOTPHandler{svc: svc}
}

// Execute sends a one-time code to the phone number.
//
//	@Summary		Request OTP
//	@Description	Issues a six digit one-time code for the phone number
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.OTPRequest	true	"Phone number"
//	@Success		200		{object}	models.OTPResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/auth/request-otp [post]
func (h *RequestOTPHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[models.OTPRequest](w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Auth.RequestOTP(r.Context(), req.PhoneNo)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, resp)
}
