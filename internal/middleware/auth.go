package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// TokenVerifier checks a bearer token
type TokenVerifier interface {
	Verify(token string) error
}

// AuthMiddleware rejects requests without a valid "Authorization: Bearer" token
func AuthMiddleware(verifier TokenVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w)
				return
			}
			if err := verifier.Verify(token); err != nil {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","kind":"unauthorized"}`))
}
