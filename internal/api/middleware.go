package api

import (
	"encoding/json"
	"net/http"

	"github.com/shelfmark/shelfmark-server/internal/ratelimit"
)

// RateLimitMiddleware rate limits requests by client IP. Returns 429 Too
// Many Requests when the limit is exceeded.
func RateLimitMiddleware(limiter *ratelimit.KeyedLimiter, logger interface{ Warn(msg string, args ...any) }) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r)

			if !limiter.Allow(key) {
				logger.Warn("rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "RATE_LIMITED",
					"message": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request. chi's RealIP
// middleware already resolves proxy headers into RemoteAddr, so only the
// port needs stripping.
func getClientIP(r *http.Request) string {
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
