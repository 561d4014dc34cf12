package router

import (
	"fmt"
	"net/http"
)

// A Table is a [Router] recording Routes in the order they are added.
//
// A Table serves requests matching a Route's method and path exactly;
// when several Routes match, the first added wins.
//
// A Table is not safe for concurrent use while Routes are being added.
type Table struct {
	rejectDups bool
	routes     []Route
}

var _ Router = (*Table)(nil)

// A TableOption configures a *Table when constructing a new one.
type TableOption func(*Table)

// RejectDuplicates configures a *Table to refuse a Route
// whose method and path it already holds, returning ErrDuplicateRoute.
func RejectDuplicates() TableOption {
	return func(t *Table) {
		t.rejectDups = true
	}
}

// NewTable constructs an empty *Table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{routes: make([]Route, 0)}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// AddRoute records the [Route].
func (t *Table) AddRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	if t.rejectDups {
		if _, ok := t.Lookup(route.Method, route.Path); ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, route)
		}
	}

	t.routes = append(t.routes, route)
	return nil
}

// Len returns the number of Routes recorded.
func (t *Table) Len() int { return len(t.routes) }

// Lookup finds the first Route recorded for method and path.
func (t *Table) Lookup(method, path string) (Route, bool) {
	for _, r := range t.routes {
		if r.Method == method && r.Path == path {
			return r, true
		}
	}

	return Route{}, false
}

// Routes returns a copy of the Routes recorded.
func (t *Table) Routes() []Route {
	return append([]Route{}, t.routes...)
}

// ServeHTTP dispatches the request to the Route matching its method and path.
//
// A path matched under another method results in a 405 Method Not Allowed,
// otherwise a 404 Not Found.
func (t *Table) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r, ok := t.Lookup(req.Method, req.URL.Path); ok {
		r.Chain().ServeHTTP(w, req)
		return
	}

	for _, r := range t.routes {
		if r.Path == req.URL.Path {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
	}

	http.NotFound(w, req)
}
