package appMiddleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an idle client keeps its token bucket.
const limiterIdleTTL = 10 * time.Minute

// Throttle limits each client address to rps requests per second with the
// given burst. Rejected requests get 429 with a Retry-After header.
func Throttle(rps float64, burst int, logger *slog.Logger) func(next http.Handler) http.Handler {
	limiters := cache.New(limiterIdleTTL, 2*limiterIdleTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			limiter := limiterFor(limiters, key, rps, burst)

			if !limiter.Allow() {
				logger.WarnContext(r.Context(), "Request throttled",
					slog.String("client", key),
					slog.String("req_id", middleware.GetReqID(r.Context())))
				retry := time.Second
				if rps > 0 {
					retry = time.Duration(float64(time.Second) / rps)
				}
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(retry.Round(time.Second).Seconds()))))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterFor returns the client's token bucket, creating it on first use.
// Add is atomic, so concurrent first requests share one bucket.
func limiterFor(limiters *cache.Cache, key string, rps float64, burst int) *rate.Limiter {
	for {
		fresh := rate.NewLimiter(rate.Limit(rps), burst)
		if err := limiters.Add(key, fresh, cache.DefaultExpiration); err == nil {
			return fresh
		}
		if v, ok := limiters.Get(key); ok {
			// refresh the idle expiry
			limiters.SetDefault(key, v)
			return v.(*rate.Limiter)
		}
	}
}

// clientKey is the request's address without the port. RealIP should run
// before Throttle when the service sits behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
