package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xy-planning-network/autoroute/http/middleware"
	"github.com/xy-planning-network/autoroute/http/router"
)

// Healthz answers load balancers. It is routed by hand.
//
// @api.get("/healthz")
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Handler holds what the handlers autoroute routes need.
// Each exported method with a handler signature is routed.
type Handler struct {
	env    string
	now    func() time.Time
	routes func() []router.Route
}

// FetchStatus reports the environment the server runs in.
func (h *Handler) FetchStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(middleware.RequestIDKey).(string)
	writeJSON(w, map[string]string{"env": h.env, "request_id": id, "status": "ok"})
}

// FetchTime reports the server's clock.
func (h *Handler) FetchTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"time": h.now().UTC().Format(time.RFC3339)})
}

// ListRoutes reports every route the server handles.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes := make([]string, 0)
	for _, route := range h.routes() {
		routes = append(routes, route.String())
	}

	writeJSON(w, map[string][]string{"routes": routes})
}

// NorouteDump would expose internals, and so stays unrouted.
func (h *Handler) NorouteDump(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
