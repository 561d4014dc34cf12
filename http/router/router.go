package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/autoroute/http/middleware"
)

var (
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrNotValid       = errors.New("invalid")
)

// MetaHost is the Route.Meta key restricting a Route to requests for a host.
// Routers that cannot match on host ignore it.
const MetaHost = "host"

// A Route maps a path and HTTP method to an [http.Handler].
// Additional [middleware.Adapter] are called when a server handles
// a request matching the Route.
type Route struct {
	// Name identifies the handler, e.g., "FetchStatus".
	Name        string
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter

	// Meta carries settings a Router may interpret, keyed by name.
	Meta map[string]any
}

// Chain wraps the Route's Handler in its Middlewares.
func (r Route) Chain() http.Handler {
	return middleware.Chain(r.Handler, r.Middlewares...)
}

// Host returns the host Meta restricts the Route to, if any.
func (r Route) Host() string {
	host, _ := r.Meta[MetaHost].(string)
	return host
}

// String renders the Route as "METHOD /path".
func (r Route) String() string { return r.Method + " " + r.Path }

// Validate asserts the Route is complete enough to register.
func (r Route) Validate() error {
	if err := ValidMethod(r.Method); err != nil {
		return err
	}

	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("%w: path %q must begin with /", ErrNotValid, r.Path)
	}

	if r.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrNotValid, r)
	}

	return nil
}

//go:generate mockgen -destination=routertest/mock_router.go -package=routertest . Router

// A Router registers Routes.
type Router interface {
	AddRoute(route Route) error
}

var methods = map[string]bool{
	http.MethodConnect: true,
	http.MethodDelete:  true,
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodTrace:   true,
}

// ValidMethod asserts m is an upper case HTTP method name.
func ValidMethod(m string) error {
	if !methods[m] {
		return fmt.Errorf("%w: method %q", ErrNotValid, m)
	}

	return nil
}
