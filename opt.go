package autoroute

import (
	"github.com/xy-planning-network/autoroute/http/middleware"
	"github.com/xy-planning-network/autoroute/logger"
)

// DefaultMethods are the HTTP methods handlers are routed under
// unless WithMethods says otherwise.
var DefaultMethods = []string{"get"}

type config struct {
	log         logger.Logger
	meta        map[string]any
	methods     []string
	middlewares []middleware.Adapter
	paths       map[string]string
	source      bool
}

func newConfig(opts []Option) *config {
	c := &config{
		log:     logger.Discard,
		meta:    make(map[string]any),
		methods: DefaultMethods,
		paths:   make(map[string]string),
		source:  true,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// An Option configures how Register routes a Module.
type Option func(*config)

// WithLogger logs each route added and each handler skipped at DEBUG.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMeta forwards key and v to every route added, in [router.Route.Meta].
func WithMeta(key string, v any) Option {
	return func(c *config) {
		c.meta[key] = v
	}
}

// WithMethods routes each handler under every one of methods, in order.
// Methods are upper cased.
func WithMethods(methods ...string) Option {
	return func(c *config) {
		c.methods = methods
	}
}

// WithMiddlewares forwards middlewares to every route added.
func WithMiddlewares(middlewares ...middleware.Adapter) Option {
	return func(c *config) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// WithPath routes the handler named name at path instead of the path derived from its name.
// A path set on the member itself with At takes precedence.
func WithPath(name, path string) Option {
	return func(c *config) {
		c.paths[name] = path
	}
}

// WithoutSource stops Register from reading annotations out of source files.
// Only annotations attached with Annotate, and members marked Routed, are considered.
//
// Use it for binaries deployed without their source, or built with -trimpath.
func WithoutSource() Option {
	return func(c *config) {
		c.source = false
	}
}
