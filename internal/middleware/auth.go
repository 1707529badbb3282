// Package middleware provides the identity-provider boundary: bill owners
// authenticate with a bearer JWT, while participants joining via share link
// stay anonymous by design.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// User carries the identity-provider profile fields for a bill owner.
type User struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type contextKey struct{}

var userKey contextKey

// UserFromContext returns the authenticated user placed by Auth.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok
}

// Auth verifies an HS256 bearer token and attaches the user to the request
// context. Requests without a valid token get 401.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization format, use 'Bearer <token>'", http.StatusUnauthorized)
				return
			}

			user, err := validateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

func validateToken(tokenString, secret string) (User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return User{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return User{}, errors.New("token has no subject")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	phone, _ := claims["phone"].(string)

	return User{ID: sub, Name: name, Email: email, Phone: phone}, nil
}
