package autoroute_test

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/autoroute"
	"github.com/xy-planning-network/autoroute/annotation"
	"github.com/xy-planning-network/autoroute/http/middleware"
	"github.com/xy-planning-network/autoroute/http/router"
	"github.com/xy-planning-network/autoroute/http/router/routertest"
	"github.com/xy-planning-network/autoroute/logger"
)

func FetchA(w http.ResponseWriter, r *http.Request) { w.Write([]byte("a")) }

func NorouteFetchB(w http.ResponseWriter, r *http.Request) {}

// FetchCustom is routed by hand.
//
// @router.get("/custom", tags=["x"])
func FetchCustom(w http.ResponseWriter, r *http.Request) {}

// FetchOther is routed by hand on another router.
//
// @router2.get("/other")
func FetchOther(w http.ResponseWriter, r *http.Request) {}

// FetchCached is annotated, but not by a router.
//
// @cache(60)
func FetchCached(w http.ResponseWriter, r *http.Request) {}

func ListThings(w http.ResponseWriter, r *http.Request) { w.Write([]byte("things")) }

func newTable(t *testing.T) (*router.Table, *autoroute.Module) {
	t.Helper()
	tbl := router.NewTable()
	return tbl, autoroute.NewModule("").Add("router", tbl)
}

func TestRegister(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Func(FetchA).Func(NorouteFetchB)

	// Act
	err := autoroute.Register(m)

	// Assert
	require.Nil(t, err)
	require.Equal(t, 1, tbl.Len())

	route := tbl.Routes()[0]
	require.Equal(t, http.MethodGet, route.Method)
	require.Equal(t, "/fetch-a", route.Path)
	require.Equal(t, "FetchA", route.Name)

	w := httptest.NewRecorder()
	tbl.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fetch-a", nil))
	require.Equal(t, "a", w.Body.String())
}

func TestRegisterSnakeCaseNames(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Add("fetch_a", FetchA).Add("noroute_fetch_b", NorouteFetchB).Add("x_y_z", ListThings)

	// Act
	err := autoroute.Register(m)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/fetch-a", "/x-y-z"}, paths(tbl))
}

func TestRegisterNoRouter(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    *autoroute.Module
	}{
		{"empty", autoroute.NewModule("")},
		{"handlers-only", autoroute.NewModule("").Func(FetchA)},
		{"not-a-router", autoroute.NewModule("").Add("router", http.NewServeMux()).Func(FetchA)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			err := autoroute.Register(tc.m)

			// Assert
			require.ErrorIs(t, err, autoroute.ErrNoRouter)
		})
	}

	require.ErrorIs(t, autoroute.Register(nil), autoroute.ErrNotValid)
}

func TestRegisterPriorRoute(t *testing.T) {
	t.Run("Router-Identifier", func(t *testing.T) {
		// Arrange
		tbl, m := newTable(t)
		m.Func(FetchCustom).Func(FetchOther).Func(FetchCached)

		// Act
		err := autoroute.Register(m)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []string{"/fetch-cached"}, paths(tbl))
	})

	t.Run("Other-Identifier", func(t *testing.T) {
		// Arrange
		tbl := router.NewTable()
		m := autoroute.NewModule("").Add("api", tbl).Func(FetchCustom).Func(FetchOther)

		// Act
		err := autoroute.Register(m)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []string{"/fetch-custom", "/fetch-other"}, paths(tbl))
	})

	t.Run("Routed", func(t *testing.T) {
		// Arrange
		tbl, m := newTable(t)
		m.Func(FetchA, autoroute.Routed()).Func(ListThings)

		// Act
		err := autoroute.Register(m)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []string{"/list-things"}, paths(tbl))
	})

	t.Run("Annotate", func(t *testing.T) {
		// Arrange
		tbl, m := newTable(t)
		m.Func(FetchA, autoroute.Annotate(`@router.get("/a")`)).Func(ListThings, autoroute.Annotate("@cache"))

		// Act
		err := autoroute.Register(m, autoroute.WithoutSource())

		// Assert
		require.Nil(t, err)
		require.Equal(t, []string{"/list-things"}, paths(tbl))
	})

	t.Run("Excluded-Wins", func(t *testing.T) {
		// Arrange
		tbl, m := newTable(t)
		m.Func(NorouteFetchB, autoroute.At("/b"))

		// Act
		err := autoroute.Register(m)

		// Assert
		require.Nil(t, err)
		require.Zero(t, tbl.Len())
	})
}

func TestRegisterForeign(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Add("not_found", http.NotFound).Func(FetchA)

	// Act
	err := autoroute.Register(m, autoroute.WithoutSource())

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/fetch-a"}, paths(tbl))

	// Arrange
	tbl = router.NewTable()
	m = autoroute.NewModule("example.com/elsewhere").Add("router", tbl).Func(FetchA)

	// Act
	err = autoroute.Register(m)

	// Assert
	require.Nil(t, err)
	require.Zero(t, tbl.Len())
}

func TestRegisterMethods(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Func(FetchA)

	// Act
	err := autoroute.Register(m, autoroute.WithMethods("get", "Post"))

	// Assert
	require.Nil(t, err)
	routes := tbl.Routes()
	require.Len(t, routes, 2)
	require.Equal(t, http.MethodGet, routes[0].Method)
	require.Equal(t, http.MethodPost, routes[1].Method)
	require.Equal(t, "/fetch-a", routes[1].Path)
}

func TestRegisterInvalidOptions(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []autoroute.Option
	}{
		{"no-methods", []autoroute.Option{autoroute.WithMethods()}},
		{"empty-method", []autoroute.Option{autoroute.WithMethods("get", " ")}},
		{"relative-path", []autoroute.Option{autoroute.WithPath("FetchA", "fetch")}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			tbl, m := newTable(t)
			m.Func(FetchA)

			// Act
			err := autoroute.Register(m, tc.opts...)

			// Assert
			require.ErrorIs(t, err, autoroute.ErrNotValid)
			require.Zero(t, tbl.Len())
		})
	}
}

func TestRegisterTwice(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Func(FetchA).Func(ListThings)

	// Act
	require.Nil(t, autoroute.Register(m))
	require.Nil(t, autoroute.Register(m))

	// Assert
	require.Equal(t, []string{"/fetch-a", "/list-things", "/fetch-a", "/list-things"}, paths(tbl))
}

func TestRegisterTwiceRejected(t *testing.T) {
	// Arrange
	tbl := router.NewTable(router.RejectDuplicates())
	m := autoroute.NewModule("").Add("router", tbl).Func(FetchA)
	require.Nil(t, autoroute.Register(m))

	// Act
	err := autoroute.Register(m)

	// Assert
	require.ErrorIs(t, err, router.ErrDuplicateRoute)
	require.Equal(t, 1, tbl.Len())
}

func TestRegisterRouterError(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errBoom := errors.New("boom")
	mr := routertest.NewMockRouter(ctrl)
	mr.EXPECT().AddRoute(gomock.Any()).Return(errBoom).Times(1)

	m := autoroute.NewModule("").Add("router", mr).Func(FetchA).Func(ListThings)

	// Act
	err := autoroute.Register(m)

	// Assert
	require.ErrorIs(t, err, errBoom)
}

func TestRegisterSourceUnavailable(t *testing.T) {
	// Arrange
	literal := func(w http.ResponseWriter, r *http.Request) {}
	tbl, m := newTable(t)
	m.Func(FetchA).Add("fetch_literal", literal)

	// Act
	err := autoroute.Register(m)

	// Assert
	require.ErrorIs(t, err, annotation.ErrSourceUnavailable)
	require.Equal(t, []string{"/fetch-a"}, paths(tbl))

	// Arrange
	tbl, m = newTable(t)
	m.Add("fetch_literal", literal)

	// Act
	err = autoroute.Register(m, autoroute.WithoutSource())

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/fetch-literal"}, paths(tbl))
}

func TestRegisterFirstRouter(t *testing.T) {
	// Arrange
	first := router.NewTable()
	second := router.NewTable()
	m := autoroute.NewModule("").Add("first", first).Func(FetchA).Add("second", second)

	// Act
	err := autoroute.Register(m)

	// Assert
	require.Nil(t, err)
	require.Equal(t, 1, first.Len())
	require.Zero(t, second.Len())
}

func TestRegisterOn(t *testing.T) {
	// Arrange
	tbl := router.NewTable()
	m := autoroute.NewModule("").Func(FetchA).Func(FetchCustom)

	// Act
	err := autoroute.RegisterOn(tbl, "", m)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/fetch-a", "/fetch-custom"}, paths(tbl))

	// Arrange
	tbl = router.NewTable()

	// Act
	err = autoroute.RegisterOn(tbl, "router", m)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/fetch-a"}, paths(tbl))

	require.ErrorIs(t, autoroute.RegisterOn(nil, "", m), autoroute.ErrNoRouter)
	require.ErrorIs(t, autoroute.RegisterOn(tbl, "", nil), autoroute.ErrNotValid)
}

func TestRegisterPassThrough(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Func(FetchA)
	tag := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Auto", "1")
			h.ServeHTTP(w, r)
		})
	}

	// Act
	err := autoroute.Register(
		m,
		autoroute.WithMiddlewares(tag),
		autoroute.WithMeta(router.MetaHost, "api.example.com"),
	)

	// Assert
	require.Nil(t, err)

	route := tbl.Routes()[0]
	require.Len(t, route.Middlewares, 1)
	require.Equal(t, "api.example.com", route.Host())

	w := httptest.NewRecorder()
	tbl.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fetch-a", nil))
	require.Equal(t, "1", w.Header().Get("X-Auto"))
}

func TestRegisterPathOverrides(t *testing.T) {
	// Arrange
	tbl, m := newTable(t)
	m.Func(FetchA, autoroute.At("/a")).Func(ListThings).Func(FetchCached)

	// Act
	err := autoroute.Register(
		m,
		autoroute.WithPath("ListThings", "/things"),
		autoroute.WithPath("FetchA", "/ignored"),
	)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/a", "/things", "/fetch-cached"}, paths(tbl))
}

func TestRegisterMux(t *testing.T) {
	// Arrange
	mux := router.New("DEVELOPMENT", nil)
	mux.OnEveryRequest(middleware.RequestID())
	m := autoroute.NewModule("").Add("router", mux).Func(FetchA).Func(FetchCustom).Func(ListThings)

	// Act
	err := autoroute.Register(m, autoroute.WithMethods("get", "head"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []router.Route{
		{Name: "FetchA", Method: http.MethodGet, Path: "/fetch-a"},
		{Method: http.MethodHead, Path: "/fetch-a"},
		{Name: "ListThings", Method: http.MethodGet, Path: "/list-things"},
		{Method: http.MethodHead, Path: "/list-things"},
	}, mux.Routes())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list-things", nil))
	require.Equal(t, "things", w.Body.String())
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRegisterReport(t *testing.T) {
	// Arrange
	_, m := newTable(t)
	m.Func(FetchA).Func(NorouteFetchB).Func(ListThings)

	// Act
	routes, err := autoroute.RegisterReport(m)

	// Assert
	require.Nil(t, err)
	require.Len(t, routes, 2)
	require.Equal(t, "GET /fetch-a", routes[0].String())
	require.Equal(t, "GET /list-things", routes[1].String())
}

func TestRegisterLogs(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")
	b := new(bytes.Buffer)
	l := logger.NewLogger(
		logger.WithLogger(log.New(b, "", 0)),
		logger.WithLevel(logger.LogLevelDebug),
		logger.WithColor(false),
	)
	_, m := newTable(t)
	m.Func(FetchA).Func(NorouteFetchB)

	// Act
	err := autoroute.Register(m, autoroute.WithLogger(l))

	// Assert
	require.Nil(t, err)
	require.Contains(t, b.String(), `'registered route' log_context: {"route":{"handler":"FetchA","method":"GET","path":"/fetch-a"}}`)
	require.Contains(t, b.String(), `'skipped handler' log_context: {"data":{"reason":"excluded"},"route":{"handler":"NorouteFetchB"}}`)
}

func paths(tbl *router.Table) []string {
	ps := make([]string, 0)
	for _, r := range tbl.Routes() {
		ps = append(ps, r.Path)
	}

	return ps
}
