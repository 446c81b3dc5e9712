package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims extends RegisteredClaims with application-specific fields.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// RequireJWT guards a handler with HMAC-signed JWT validation. Tokens must
// carry an exp claim, and when expectedIssuer is non-empty the iss claim has
// to match. On success the subject and role are injected into the request as
// X-User-ID and X-User-Role headers.
func RequireJWT(secret []byte, expectedIssuer string) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if expectedIssuer != "" {
		opts = append(opts, jwt.WithIssuer(expectedIssuer))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := bearerToken(r)
			if err != nil {
				writeUnauthorized(w, err.Error())
				return
			}

			var claims Claims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, opts...)
			if err != nil {
				writeUnauthorized(w, "invalid token: "+err.Error())
				return
			}
			if !token.Valid {
				writeUnauthorized(w, "invalid token")
				return
			}

			r2 := r.Clone(r.Context())
			if claims.Subject != "" {
				r2.Header.Set("X-User-ID", claims.Subject)
			}
			if claims.Role != "" {
				r2.Header.Set("X-User-Role", claims.Role)
			}
			next.ServeHTTP(w, r2)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": msg})
}
