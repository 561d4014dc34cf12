package autoroute

import "github.com/xy-planning-network/autoroute/http/router"

// A NamedRouter is a [router.Router] found in a [Module], with the name it was added under.
type NamedRouter struct {
	Name   string
	Router router.Router
}

// Routers returns every member of m implementing [router.Router], in the order they were added.
func Routers(m *Module) []NamedRouter {
	routers := make([]NamedRouter, 0)
	if m == nil {
		return routers
	}

	for _, mem := range m.members {
		if r, ok := mem.Router(); ok {
			routers = append(routers, NamedRouter{Name: mem.Name, Router: r})
		}
	}

	return routers
}
