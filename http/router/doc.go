/*

Package router defines what a router is to autoroute and adapters for the routers in common use.

A [Router] accepts one [Route] at a time through AddRoute.
A Route maps an HTTP method and path to an [http.Handler],
along with the [middleware.Adapter] wrapping it and any metadata the registering code forwards.

Four implementations are provided:

	- [*Mux] wraps [mux.Router] and is the default choice for a standalone server.
	- [Gin] registers Routes on a [gin.IRoutes], e.g., a *gin.Engine or *gin.RouterGroup.
	- [Echo] registers Routes on an *echo.Echo.
	- [*Table] records Routes in memory and serves exact matches, which suits tests and route listings.

It is often the case that many routes for a web server share identical middleware stacks.
[*Mux] applies a stack to every Route it handles, set through [*Mux.OnEveryRequest],
ahead of the middlewares a Route brings itself.

*/
package router
