package auth

import (
	"net/http"
	"strings"

	"github.com/ghuser/homebook/pkg/httpx"
	"github.com/ghuser/homebook/pkg/logger"
)

// TokenVerifier checks a raw bearer token. *Tokens satisfies it.
type TokenVerifier interface {
	Verify(raw string) (*Claims, error)
}

// RequireAuth is a chi middleware that enforces bearer authentication.
// It verifies the Authorization header, extracts the user ID, and injects it
// into the request context. Returns 401 {"message": ...} if the header is
// missing or the token does not verify.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(tokens TokenVerifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				log.WarnContext(r.Context(), "rejected bearer token", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				log.WarnContext(r.Context(), "invalid subject in token", "subject", claims.Subject, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = WithPhone(ctx, claims.Phone)
			ctx = WithName(ctx, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
