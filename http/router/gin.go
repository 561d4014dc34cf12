package router

import (
	"github.com/gin-gonic/gin"
)

// Gin is a [Router] registering Routes on a [gin.IRoutes],
// such as a *gin.Engine or a *gin.RouterGroup.
//
// Route.Meta is ignored.
type Gin struct {
	R gin.IRoutes
}

var _ Router = Gin{}

// NewGin constructs a Gin adapter for r.
func NewGin(r gin.IRoutes) Gin { return Gin{R: r} }

// AddRoute applies the [Route] to the gin router.
//
// gin panics on conflicting routes; AddRoute does not recover from it.
func (g Gin) AddRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	g.R.Handle(route.Method, route.Path, gin.WrapH(route.Chain()))
	return nil
}
