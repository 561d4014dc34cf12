package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the response header RequestID echoes the request's ID in.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under RequestIDKey
// and echoes it in the RequestIDHeader of the response.
//
// An ID already sent by the client in RequestIDHeader is reused when it is a valid uuid.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
