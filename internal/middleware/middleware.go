package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

var defaultAllowed = map[string]struct{}{
	"http://localhost:5173":             {},
	"http://localhost:5174":             {},
	"https://districtlens.github.io":    {},
	"https://dashboard.districtlens.io": {},
}

// allowedOrigins merges the built-in allow-list with ALLOWED_ORIGINS
// (comma-separated) from the environment.
func allowedOrigins() map[string]struct{} {
	allowed := make(map[string]struct{}, len(defaultAllowed))
	for origin := range defaultAllowed {
		allowed[origin] = struct{}{}
	}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return allowed
}

func CORSMiddleware(next http.Handler) http.Handler {
	allowed := allowedOrigins()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it’s on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization, X-Admin-Token")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit caps request throughput with a shared token bucket. District
// lookups walk polygon rings, so a burst of map clicks shouldn't be allowed
// to monopolize the process. Requests over the limit get 429 + Retry-After.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitFromEnv builds a limiter from LOOKUP_RATE_RPS / LOOKUP_RATE_BURST,
// falling back to 25 rps with a burst of 50.
func RateLimitFromEnv() func(http.Handler) http.Handler {
	rps := 25.0
	if v, err := strconv.ParseFloat(os.Getenv("LOOKUP_RATE_RPS"), 64); err == nil && v > 0 {
		rps = v
	}
	burst := 50
	if v, err := strconv.Atoi(os.Getenv("LOOKUP_RATE_BURST")); err == nil && v > 0 {
		burst = v
	}
	return RateLimit(rps, burst)
}

// AdminTokenMiddleware guards operational endpoints. The caller presents the
// raw token in X-Admin-Token; only its bcrypt hash lives in the environment
// (ADMIN_TOKEN_HASH). With no hash configured, admin endpoints are disabled
// outright rather than left open.
func AdminTokenMiddleware(hashedToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hashedToken == "" {
				http.Error(w, "Admin endpoints are not configured", http.StatusForbidden)
				return
			}

			token := r.Header.Get("X-Admin-Token")
			if token == "" {
				http.Error(w, "Missing admin token", http.StatusUnauthorized)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(token)); err != nil {
				http.Error(w, "Invalid admin token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
