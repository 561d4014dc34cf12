package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/autoroute/http/middleware"
	"github.com/xy-planning-network/autoroute/logger"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(log.New(b, "", 0)), logger.WithColor(false))
	r := httptest.NewRequest(http.MethodGet, "/fetch-status?password=hunter2&q=1", nil)
	r = r.WithContext(context.WithValue(r.Context(), middleware.IPAddrKey, "1.1.1.1"))

	// Act
	middleware.LogRequest(l)(NoopHandler()).ServeHTTP(httptest.NewRecorder(), r)

	// Assert
	require.Contains(t, b.String(), "1.1.1.1 GET /fetch-status?password=xxxxxxx&q=1")
	require.NotContains(t, b.String(), "hunter2")
	require.Contains(t, b.String(), `"ip_address":"1.1.1.1"`)
}
