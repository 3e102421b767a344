package handlers

import (
	"net/http"

	"github.com/ghuser/homebook/pkg/errhttp"
	"github.com/ghuser/homebook/pkg/httpx"
	pkgvalidator "github.com/ghuser/homebook/pkg/validator"
	appsvcs "github.com/ghuser/homebook/services/auth/application/services"
	"github.com/ghuser/homebook/services/auth/domain/models"
)

// VerifyOTPHandler handles POST /auth/verify-otp requests.
type VerifyOTPHandler struct {
	svc *appsvcs.Services
}

// NewVerifyOTPHandler returns a VerifyOTPHandler backed by the given services.
func NewVerifyOTPHandler(svc *appsvcs.Services) *VerifyOTPHandler {
	return &VerifyOTPHandler{svc: svc}
}

// Execute exchanges a valid code for an access token.
//
//	@Summary		Verify OTP
//	@Description	Checks the one-time code and returns a bearer access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.VerifyOTPRequest	true	"Phone number and code"
//	@Success		200		{object}	models.AuthResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/auth/verify-otp [post]
func (h *VerifyOTPHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[models.VerifyOTPRequest](w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Auth.VerifyOTP(r.Context(), req.PhoneNo, req.OTP, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, resp)
}
