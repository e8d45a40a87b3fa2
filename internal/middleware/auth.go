package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rgoulding/notekeep/internal/auth"
)

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "auth-token"

// RequireAuth verifies the auth-token header and populates the request
// context with the resolved user id. A missing token and an invalid token
// are separate terminal branches: neither reaches the next handler, and a
// missing token is rejected before any verification is attempted.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				unauthenticated(w)
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				unauthenticated(w)
				return
			}

			ctx := auth.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Please authenticate using a valid token"})
}
