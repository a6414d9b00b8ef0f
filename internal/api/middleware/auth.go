package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type authKeyType string

const (
	CallerKey         authKeyType = "caller"
	OrganizationIDKey authKeyType = "organization_id"
)

// Claims are the claims of a caller token. Organization restricts the caller to one organization when set.
type Claims struct {
	Organization string `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// Auth validates a Bearer JWT using the provided HMAC secret and adds the caller to the context.
// An empty secret disables authentication.
func Auth(hmacSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(hmacSecret) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])

			var claims Claims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
				return hmacSecret, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CallerKey, claims.Subject)
			ctx = context.WithValue(ctx, OrganizationIDKey, claims.Organization)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCaller(ctx context.Context) string {
	s, _ := ctx.Value(CallerKey).(string)
	return s
}

// GetOrganizationID returns the organization the caller is restricted to, or "" when it is not.
func GetOrganizationID(ctx context.Context) string {
	s, _ := ctx.Value(OrganizationIDKey).(string)
	return s
}
