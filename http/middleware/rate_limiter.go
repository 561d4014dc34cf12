package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRate  rate.Limit = 5
	defaultBurst            = 20
	visitorTTL              = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	limit rate.Limit
	val   map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors limiting each IP address
// to 5 requests every second with bursts of up to 20.
func NewVisitors() *Visitors { return NewVisitorsLimit(defaultRate, defaultBurst) }

// NewVisitorsLimit constructs a *Visitors limiting each IP address
// to limit requests every second with bursts of up to burst.
func NewVisitorsLimit(limit rate.Limit, burst int) *Visitors {
	return &Visitors{burst: burst, limit: limit, val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler
// when the requesting IP address has not exceeded its limit.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(IPAddress(r)).Limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
