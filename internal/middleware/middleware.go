package api_middleware

import (
	"net/http"
	"time"

	"github.com/paybridge/crypto-checkout/internal/logger"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// AuthMiddleware guards the invoice routes with a single API
// credential. Only the bcrypt hash of the key is kept in memory.
type AuthMiddleware struct {
	apiKeyHash []byte
}

func NewAuthMiddleware(apiKeyHash string) *AuthMiddleware {
	return &AuthMiddleware{apiKeyHash: []byte(apiKeyHash)}
}

func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")

		if apiKey == "" {
			logger.Error("no API key provided")
			http.Error(w, "no API key provided", http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword(am.apiKeyHash, []byte(apiKey)); err != nil {
			logger.Error("invalid API key")
			http.Error(w, "invalid API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var limiter = rate.NewLimiter(rate.Every(time.Second), 10)

func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			logger.Errorf("rate limit exceeded for IP: %s", r.RemoteAddr)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
