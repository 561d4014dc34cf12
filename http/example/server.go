package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/autoroute"
	"github.com/xy-planning-network/autoroute/config"
	"github.com/xy-planning-network/autoroute/http/middleware"
	"github.com/xy-planning-network/autoroute/http/router"
	"github.com/xy-planning-network/autoroute/logger"
)

type server struct {
	l       logger.Logger
	srv     *http.Server
	timeout time.Duration
}

// newServer routes the example's handlers and readies them to be served.
func newServer(c config.Config, l logger.Logger) (*server, error) {
	root := router.New(c.Env.String(), middleware.LogRequest(l))
	root.OnEveryRequest(
		middleware.InjectIPAddress(),
		middleware.RequestID(),
		middleware.LogRequest(l),
	)

	api := root
	if c.Prefix != "" {
		api = root.Subrouter(c.Prefix)
	}

	if err := api.Handle(router.Route{
		Name:    "Healthz",
		Method:  http.MethodGet,
		Path:    "/healthz",
		Handler: http.HandlerFunc(Healthz),
	}); err != nil {
		return nil, err
	}

	h := &Handler{env: c.Env.String(), now: time.Now, routes: root.Routes}
	mod := autoroute.NewModule("").
		Add("api", api).
		Func(Healthz, autoroute.Routed()).
		Methods(h)

	routes, err := autoroute.RegisterReport(
		mod,
		autoroute.WithMethods(c.Methods...),
		autoroute.WithMiddlewares(
			middleware.RateLimit(middleware.NewVisitors()),
			middleware.CORS(c.BaseURL),
		),
		autoroute.WithLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("could not route handlers: %w", err)
	}

	for _, r := range routes {
		l.Info("routed "+r.String(), &logger.LogContext{
			Route: &logger.LogRoute{Handler: r.Name, Method: r.Method, Path: r.Path},
		})
	}

	return &server{
		l:       l,
		srv:     &http.Server{Addr: c.Addr(), Handler: root, ReadHeaderTimeout: 5 * time.Second},
		timeout: c.ShutdownTimeout,
	}, nil
}

// guide begins the web server, stopping on any of:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (s *server) guide() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s", s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		s.l.Info("received shutdown signal", nil)
	}

	return s.shutdown()
}

// shutdown stops the web server, waiting for open requests up to the configured timeout.
func (s *server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	if err := s.srv.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}
