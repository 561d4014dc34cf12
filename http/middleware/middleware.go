package middleware

import (
	"net/http"
)

// A ctxKey scopes values the middlewares in this package put on a request's context.
type ctxKey string

func (k ctxKey) String() string { return "autoroute/" + string(k) }

const (
	// IPAddrKey holds the originating IP address, set by InjectIPAddress.
	IPAddrKey ctxKey = "ip-addr"

	// RequestIDKey holds the request's ID, set by RequestID.
	RequestIDKey ctxKey = "request-id"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
//
// The first adapter is the outermost, and so is called first.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		if adapters[i] == nil {
			continue
		}
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter returns the handler unchanged.
func NoopAdapter(h http.Handler) http.Handler { return h }
