package autoroute

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/autoroute/annotation"
	"github.com/xy-planning-network/autoroute/http/middleware"
	"github.com/xy-planning-network/autoroute/http/router"
	"github.com/xy-planning-network/autoroute/logger"
)

// Skip reasons, as logged.
const (
	reasonExcluded = "excluded"
	reasonForeign  = "foreign"
	reasonRouted   = "routed"
)

// Register routes every eligible handler of m on the first router m holds.
//
// The router's member name identifies it: a handler carrying an annotation
// whose name begins with that identifier, e.g. @router.get for a router added as "router",
// is considered routed already and is skipped.
// So are handlers marked Routed, handlers carrying ExcludePrefix,
// and handlers compiled in a package other than m.Path.
//
// Each remaining handler is added at its path under every configured method, in order.
// Register stops at the first error, leaving any routes already added in place.
// It is not idempotent: registering m twice adds every route twice.
//
// If m holds no router, an error wrapping ErrNoRouter returns.
func Register(m *Module, opts ...Option) error {
	_, err := RegisterReport(m, opts...)
	return err
}

// RegisterReport behaves like Register, returning the routes it added.
func RegisterReport(m *Module, opts ...Option) ([]router.Route, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil module", ErrNotValid)
	}

	rs := Routers(m)
	if len(rs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRouter, m.Path)
	}

	return registerOn(rs[0].Router, rs[0].Name, m, newConfig(opts))
}

// RegisterOn routes every eligible handler of m on r.
//
// ident stands in for the name of r when checking annotations for prior routes.
// With an empty ident, only members marked Routed count as routed.
func RegisterOn(r router.Router, ident string, m *Module, opts ...Option) error {
	if r == nil {
		return fmt.Errorf("%w: nil router", ErrNoRouter)
	}

	if m == nil {
		return fmt.Errorf("%w: nil module", ErrNotValid)
	}

	_, err := registerOn(r, ident, m, newConfig(opts))
	return err
}

func registerOn(r router.Router, ident string, m *Module, c *config) ([]router.Route, error) {
	if err := m.Err(); err != nil {
		return nil, err
	}

	methods, err := c.validate()
	if err != nil {
		return nil, err
	}

	added := make([]router.Route, 0)
	for _, mem := range m.members {
		h, ok := mem.Handler()
		if !ok {
			continue
		}

		decos, err := c.decorators(mem)
		if err != nil {
			return added, err
		}

		sym, _, _, err := annotation.Lookup(mem.fn())
		if err != nil {
			return added, err
		}

		var reason string
		switch {
		case sym.Package != m.Path:
			reason = reasonForeign
		case mem.routed || hasPriorRoute(decos, ident):
			reason = reasonRouted
		case Excluded(mem.Name):
			reason = reasonExcluded
		}

		if reason != "" {
			c.log.Debug("skipped handler", &logger.LogContext{
				Data:  map[string]any{"reason": reason},
				Route: &logger.LogRoute{Handler: mem.Name},
			})
			continue
		}

		path := c.pathFor(mem)
		for _, method := range methods {
			route := router.Route{
				Name:        mem.Name,
				Path:        path,
				Method:      method,
				Handler:     h,
				Middlewares: append([]middleware.Adapter{}, c.middlewares...),
				Meta:        c.metaCopy(),
			}

			if err := r.AddRoute(route); err != nil {
				return added, err
			}

			c.log.Debug("registered route", &logger.LogContext{
				Route: &logger.LogRoute{Handler: mem.Name, Method: method, Path: path},
			})
			added = append(added, route)
		}
	}

	return added, nil
}

// hasPriorRoute reports whether any decorator's name begins with ident.
//
// The check is textual: with ident "router", @router2.get matches too.
func hasPriorRoute(decos []annotation.Decorator, ident string) bool {
	if ident == "" {
		return false
	}

	for _, d := range decos {
		if d.HasPrefix(ident) {
			return true
		}
	}

	return false
}

// decorators collects the annotations on mem,
// first those in source, then those attached with Annotate.
func (c *config) decorators(mem Member) ([]annotation.Decorator, error) {
	decos := make([]annotation.Decorator, 0)
	if c.source {
		found, err := annotation.Extract(mem.fn())
		if err != nil {
			return nil, err
		}
		decos = append(decos, found...)
	}

	return append(decos, annotation.ParseAll(mem.annotations)...), nil
}

func (c *config) metaCopy() map[string]any {
	if len(c.meta) == 0 {
		return nil
	}

	meta := make(map[string]any, len(c.meta))
	for k, v := range c.meta {
		meta[k] = v
	}

	return meta
}

func (c *config) pathFor(mem Member) string {
	if mem.path != "" {
		return mem.path
	}

	if p, ok := c.paths[mem.Name]; ok {
		return p
	}

	return PathFor(mem.Name)
}

// validate upper cases the configured methods and checks configured paths.
func (c *config) validate() ([]string, error) {
	if len(c.methods) == 0 {
		return nil, fmt.Errorf("%w: no methods", ErrNotValid)
	}

	methods := make([]string, 0, len(c.methods))
	for _, m := range c.methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			return nil, fmt.Errorf("%w: empty method", ErrNotValid)
		}
		methods = append(methods, m)
	}

	for name, p := range c.paths {
		if !strings.HasPrefix(p, "/") {
			return nil, fmt.Errorf("%w: path %q for %s must begin with /", ErrNotValid, p, name)
		}
	}

	return methods, nil
}
