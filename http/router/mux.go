package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/autoroute/http/middleware"
)

// Mux is a [Router] backed by a [mux.Router].
type Mux struct {
	Env           string
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

var _ Router = (*Mux)(nil)

// New constructs a [*Mux] for the given environment.
//
// logReq is applied to requests no Route matches, as well as to static files.
// Add it to OnEveryRequest to have it apply to Routes as well.
func New(env string, logReq middleware.Adapter) *Mux {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Mux{logReq: logReq, Env: env, r: mux.NewRouter()}
}

// AddRoute applies the [Route] to the [*Mux].
//
// Middlewares on the *Mux run before those on the Route.
// A Route with a Name becomes a named mux route; one with a host in Meta only matches that host.
func (r *Mux) AddRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	mws := append(append([]middleware.Adapter{}, r.everyReqStack...), route.Middlewares...)
	handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler.ServeHTTP), mws...)

	mr := r.r.Handle(route.Path, handler).Methods(route.Method)
	if host := route.Host(); host != "" {
		mr = mr.Host(host)
	}

	if route.Name != "" && r.r.Get(route.Name) == nil {
		mr.Name(route.Name)
	}

	return mr.GetError()
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Mux) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			r.everyReqStack...,
		),
	)
}

// Handle applies the [Route] to the [*Mux].
func (r *Mux) Handle(route Route) error {
	return r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Mux) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Mux
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// HandleRoutes stops at the first Route failing to register.
func (r *Mux) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) error {
	for _, route := range routes {
		route.Middlewares = append(append([]middleware.Adapter{}, middlewares...), route.Middlewares...)
		if err := r.AddRoute(route); err != nil {
			return err
		}
	}

	return nil
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Mux] will apply to every request.
//
// Only Routes added afterwards are affected.
func (r *Mux) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Routes lists the Routes the *Mux handles, in the order they were added.
//
// Each Route carries its path template, one method, and its name if it has one,
// but not its handler.
func (r *Mux) Routes() []Route {
	routes := make([]Route, 0)
	r.r.Walk(func(mr *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tmpl, err := mr.GetPathTemplate()
		if err != nil {
			return nil
		}

		ms, err := mr.GetMethods()
		if err != nil {
			return nil
		}

		for _, m := range ms {
			routes = append(routes, Route{Name: mr.GetName(), Path: tmpl, Method: m})
		}

		return nil
	})

	return routes
}

// ServeDir serves the files in root under prefix, telling clients to cache them.
func (r *Mux) ServeDir(prefix string, root http.FileSystem) {
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(root)),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// ServeHTTP responds to an HTTP request.
func (r *Mux) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// SubrouterHost constructs a [*Mux] that handles requests for host.
func (r *Mux) SubrouterHost(host string) *Mux {
	return &Mux{
		Env:           r.Env,
		r:             r.r.Host(host).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// Subrouter constructs a [*Mux] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/fetch-status
func (r *Mux) Subrouter(prefix string) *Mux {
	return &Mux{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// URL builds the URL of the Route named name, filling in pairs of path variables.
func (r *Mux) URL(name string, pairs ...string) (string, error) {
	mr := r.r.Get(name)
	if mr == nil {
		return "", ErrNotValid
	}

	u, err := mr.URLPath(pairs...)
	if err != nil {
		return "", err
	}

	return u.String(), nil
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
