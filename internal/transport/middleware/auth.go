package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (ctxutil.Session, error)
}

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

// AccessTokenParam is the query parameter accepted in place of the
// Authorization header. Browsers cannot set headers on a WebSocket upgrade.
const AccessTokenParam = "access_token"

// Auth resolves a bearer token into a session on the request context.
// Requests without a token pass through anonymously; a token that fails
// validation is rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			session, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeFailure(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}
			noteUser(r.Context(), session.UserID)
			ctx := ctxutil.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		const prefix = "Bearer "
		if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
			return strings.TrimSpace(h[len(prefix):])
		}
		return ""
	}
	if r.Method == http.MethodGet {
		return r.URL.Query().Get(AccessTokenParam)
	}
	return ""
}
