package http

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/http/respond"
)

// Authenticate resolves the bearer token into a Principal and stores it on the
// request context. Requests without a valid token are rejected with 401.
func Authenticate(v *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				respond.Fail(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
				return
			}

			p, err := v.Parse(strings.TrimSpace(token))
			if err != nil {
				respond.Fail(w, r, http.StatusUnauthorized, "unauthorized", "invalid bearer token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}
