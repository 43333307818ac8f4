// Per-IP request limiting on top of golang.org/x/time/rate.
package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 20
	requestBurst      = 40
)

var (
	ipMu       sync.Mutex
	ipLimiters = make(map[string]*limiterEntry)
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func limiterFor(ip string) *rate.Limiter {
	ipMu.Lock()
	defer ipMu.Unlock()

	e, ok := ipLimiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(requestsPerSecond, requestBurst)}
		ipLimiters[ip] = e
	}
	e.lastSeen = time.Now()

	// Opportunistic sweep of idle entries.
	if len(ipLimiters) > 1024 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for k, v := range ipLimiters {
			if v.lastSeen.Before(cutoff) {
				delete(ipLimiters, k)
			}
		}
	}
	return e.limiter
}

// RateLimit wraps a handler with per-client-IP token bucket limiting.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !limiterFor(ip).Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
