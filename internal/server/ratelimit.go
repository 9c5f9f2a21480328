package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"resumelens/internal/errors"

	"golang.org/x/time/rate"
)

// Idle clients are dropped so a scan across many source IPs cannot grow
// the limiter map without bound.
const limiterIdleEviction = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client token bucket to analysis requests.
// Clients are keyed by API key when one is presented, otherwise by IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
	done    chan struct{}
	logger  *errors.Logger
}

// NewRateLimiter builds a limiter allowing requestsPerMin sustained
// requests with bursts up to burstCapacity, and starts the idle-client
// eviction loop.
func NewRateLimiter(requestsPerMin, burstCapacity int, logger *errors.Logger) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(float64(requestsPerMin) / 60.0),
		burst:   burstCapacity,
		done:    make(chan struct{}),
		logger:  logger,
	}
	go rl.evictLoop(limiterIdleEviction)
	return rl
}

// Allow reports whether the client identified by key may proceed. It
// never blocks; a denied request is simply rejected.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = time.Now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// GetStats reports limiter state for the info endpoint.
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]any{
		"active_limiters": len(rl.clients),
		"rate_per_second": float64(rl.rate),
		"rate_per_minute": float64(rl.rate) * 60.0,
		"burst_capacity":  rl.burst,
	}
}

func (rl *RateLimiter) evictLoop(idleAge time.Duration) {
	ticker := time.NewTicker(idleAge)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(idleAge)
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle(idleAge time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-idleAge)
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}

	if rl.logger != nil {
		rl.logger.Debug("Evicted idle rate limiter clients",
			"remaining_clients", len(rl.clients))
	}
}

// Close stops the eviction loop. Called during server shutdown.
func (rl *RateLimiter) Close() {
	close(rl.done)
}

// rateLimitMiddleware rejects requests over the configured rate with a
// 429 before they reach the analysis handlers.
func (s *Server) rateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if s.RateLimit == nil || !s.RateLimit.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP)
			if key == "" {
				next(w, r)
				return
			}

			if !s.RateLimiter.Allow(key) {
				s.Logger.Info("Rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"client_ip", getClientIP(r))
				writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

// getRateLimitKey derives the bucket key for a request. API-key buckets
// take precedence so authenticated clients behind a shared proxy do not
// share one IP bucket.
func getRateLimitKey(r *http.Request, byAPIKey, byIP bool) string {
	if byAPIKey {
		if key := requestAPIKey(r); key != "" {
			return "api:" + key
		}
	}
	if byIP {
		return "ip:" + getClientIP(r)
	}
	return ""
}

func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return ""
}

// getClientIP resolves the client address, trusting proxy headers when
// they carry a parseable IP and falling back to the socket peer.
func getClientIP(r *http.Request) string {
	if ip := parseFirstIP(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip
	}
	if xri := r.Header.Get("X-Real-IP"); net.ParseIP(xri) != nil {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func parseFirstIP(list string) string {
	for ip := range strings.SplitSeq(list, ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	return ""
}
