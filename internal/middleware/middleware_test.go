package api_middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	api_middleware "github.com/paybridge/crypto-checkout/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	require.NoError(t, err)

	authMiddleware := api_middleware.NewAuthMiddleware(string(hash))
	protected := authMiddleware.Authenticate(okHandler())

	tests := []struct {
		name           string
		apiKey         string
		expectedStatus int
	}{
		{
			name:           "Valid API key",
			apiKey:         "secret-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing API key",
			apiKey:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong API key",
			apiKey:         "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/invoice", nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limited := api_middleware.RateLimitMiddleware(okHandler())

	var lastStatus int
	limitedSeen := false
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodGet, "/quote", nil)
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		lastStatus = w.Code
		if w.Code == http.StatusTooManyRequests {
			limitedSeen = true
		}
	}

	assert.True(t, limitedSeen, "burst above the limit should be throttled, last status %d", lastStatus)
}
