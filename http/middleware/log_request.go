package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/autoroute/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			if val := q.Get("password"); val != "" {
				q.Set("password", "xxxxxxx")
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			var lc *logger.LogContext
			if ip, ok := r.Context().Value(IPAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
				lc = &logger.LogContext{IPAddress: ip}
			}

			if id, ok := r.Context().Value(RequestIDKey).(string); ok {
				if lc == nil {
					lc = &logger.LogContext{}
				}
				lc.Data = map[string]any{"request_id": id}
			}

			ls.Info(strings.Join(strs, " "), lc)
			h.ServeHTTP(w, r)
		})
	}
}
