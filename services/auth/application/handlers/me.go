package handlers

import (
	"net/http"

	"github.com/ghuser/homebook/pkg/errhttp"
	"github.com/ghuser/homebook/pkg/httpx"
	appsvcs "github.com/ghuser/homebook/services/auth/application/services"
	"github.com/ghuser/homebook/services/auth/domain/models"
)

// MeHandler handles GET /auth/me requests.
type MeHandler struct {
	svc *appsvcs.Services
}

// NewMeHandler returns a MeHandler backed by the given services.
func NewMeHandler(svc *appsvcs.Services) *MeHandler {
	return &MeHandler{svc: svc}
}

// Execute returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Returns the user the bearer token belongs to
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.MeResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/auth/me [get]
func (h *MeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Auth.Me(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, models.MeResponse{User: user})
}
