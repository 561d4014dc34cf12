/*

example serves a handful of handlers routed by autoroute,
focusing on:

(1) declaring handlers on an autoroute.Module, both as functions and as methods;
(2) routing one handler by hand and keeping autoroute off it;
(3) forwarding middlewares to every route autoroute adds;
(4) and configuring all of it from the environment or a .env file.

Try:

	go run ./http/example
	curl localhost:8080/fetch-status
	curl localhost:8080/list-routes
	curl localhost:8080/healthz
*/
package main

import (
	"fmt"
	"os"

	"github.com/xy-planning-network/autoroute/config"
	"github.com/xy-planning-network/autoroute/logger"
)

func main() {
	c, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := logger.NewLogger(
		logger.WithEnv(c.Env.String()),
		logger.WithLevel(c.LogLevel),
		logger.WithSentry(c.SentryDSN),
	)

	s, err := newServer(c, l)
	if err != nil {
		l.Fatal(err.Error(), &logger.LogContext{Error: err})
		os.Exit(1)
	}

	if err := s.guide(); err != nil {
		l.Error(err.Error(), &logger.LogContext{Error: err})
		os.Exit(1)
	}
}
