package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gratia-app/gratia-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

const (
	perIPRateLimitRPS   = 2
	perIPRateLimitBurst = 20
	limiterCleanupEvery = 5 * time.Minute
	limiterTTL          = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	ipLimiters   = make(map[string]*limiterEntry)
	ipLimitersMu sync.Mutex
	cleanupOnce  sync.Once
)

func getIPLimiter(ip string) *rate.Limiter {
	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()

	cleanupOnce.Do(func() {
		go func() {
			for range time.Tick(limiterCleanupEvery) {
				ipLimitersMu.Lock()
				cutoff := time.Now().Add(-limiterTTL)
				for ip, entry := range ipLimiters {
					if entry.lastUse.Before(cutoff) {
						delete(ipLimiters, ip)
					}
				}
				ipLimitersMu.Unlock()
			}
		}()
	})

	entry, ok := ipLimiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(perIPRateLimitRPS, perIPRateLimitBurst)}
		ipLimiters[ip] = entry
	}
	entry.lastUse = time.Now()
	return entry.limiter
}

// PerIPRateLimit is an in-process token-bucket limiter applied in production
// in front of the Redis window limiter.
func PerIPRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !getIPLimiter(clientip.RealClientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns the middleware chain enabled when ENV=production.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		PerIPRateLimit,
	}
}
