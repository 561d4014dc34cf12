package router

import (
	"github.com/labstack/echo/v4"
)

// Echo is a [Router] registering Routes on an *echo.Echo.
//
// A host in Route.Meta registers the Route on that echo host router.
type Echo struct {
	E *echo.Echo
}

var _ Router = Echo{}

// NewEcho constructs an Echo adapter for e.
func NewEcho(e *echo.Echo) Echo { return Echo{E: e} }

// AddRoute applies the [Route] to the echo router, naming it after Route.Name.
func (e Echo) AddRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	var er *echo.Route
	if host := route.Host(); host != "" {
		er = e.E.Host(host).Add(route.Method, route.Path, echo.WrapHandler(route.Chain()))
	} else {
		er = e.E.Add(route.Method, route.Path, echo.WrapHandler(route.Chain()))
	}

	if route.Name != "" {
		er.Name = route.Name
	}

	return nil
}
