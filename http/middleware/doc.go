/*
The middleware package defines what a middleware is in autoroute and a set of basic middlewares.

Middlewares are the positional arguments autoroute forwards to every route it registers,
through autoroute.WithMiddlewares.

The available middlewares are:
- CORS
- InjectIPAddress
- LogRequest
- RateLimit
- ReportPanic
- RequestID

A reasonable chain for a public API looks like:

	adpts := []middleware.Adapter{
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.InjectIPAddress(),
		middleware.RequestID(),
		middleware.LogRequest(log),
		middleware.CORS(baseURL),
	}

*/
package middleware
