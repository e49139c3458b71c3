package middleware

import (
	"context"
	"net/http"
	"strings"

	"syndic/internal/auth"
	"syndic/internal/models"
)

const claimsKey ctxKey = "claims"

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// BearerAuth validates an Authorization: Bearer token when present and
// injects the claims into the request context. With required=true requests
// without a valid token are rejected; the relaxed mode exists so the legacy
// front end (which replays `{userType, username}` from local storage) keeps
// working until it is migrated.
func BearerAuth(v Verifier, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				if required {
					models.WriteError(w, http.StatusUnauthorized, "Jeton d'authentification requis")
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimPrefix(raw, "Bearer ")
			claims, err := v.Verify(token)
			if err != nil {
				models.WriteError(w, http.StatusUnauthorized, "Jeton d'authentification invalide")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(r *http.Request) *auth.Claims {
	v := r.Context().Value(claimsKey)
	if c, ok := v.(*auth.Claims); ok {
		return c
	}
	return nil
}
