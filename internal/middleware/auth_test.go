package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billsnap/billsnap/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestAuth(t *testing.T) {
	var gotUser middleware.User
	var called bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = middleware.UserFromContext(r.Context())
		called = true
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Auth(testSecret)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "Valid",
			header:     "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "name": "Asha", "email": "asha@example.com"}),
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingHeader",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongSecret",
			header:     "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "MissingSubject",
			header:     "Bearer " + signToken(t, testSecret, jwt.MapClaims{"name": "Asha"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage",
			header:     "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			gotUser = middleware.User{}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, "user-1", gotUser.ID)
				assert.Equal(t, "Asha", gotUser.Name)
				assert.Equal(t, "asha@example.com", gotUser.Email)

				return
			}

			assert.False(t, called)
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.UserFromContext(req.Context())
	assert.False(t, ok)
}
