package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/autoroute/logger"
)

func TestNewSentryLogger(t *testing.T) {
	t.Run("Bad-DSN", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)

		// Act
		l := logger.NewLogger(
			logger.WithLogger(newTestLogger(b)),
			logger.WithSentry("not a dsn"),
			logger.WithColor(false),
		)

		// Assert
		_, ok := l.(*logger.StdLogger)
		require.True(t, ok)
		require.Contains(t, b.String(), "unable to init Sentry")
	})

	t.Run("DSN", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)

		// Act
		l := logger.NewLogger(
			logger.WithLogger(newTestLogger(b)),
			logger.WithSentry("https://public@sentry.example.com/1"),
			logger.WithLevel(logger.LogLevelDebug),
			logger.WithColor(false),
		)
		l.Debug("hello", nil)

		// Assert
		_, ok := l.(*logger.SentryLogger)
		require.True(t, ok)
		require.Equal(t, logger.LogLevelDebug, l.LogLevel())
		require.Contains(t, b.String(), "'hello'")
	})
}

func TestSentryLoggerCaller(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewLogger(
		logger.WithLogger(newTestLogger(b)),
		logger.WithSentry("https://public@sentry.example.com/1"),
		logger.WithColor(false),
	)

	// Act
	l.Warn("careful", nil)

	// Assert
	require.Contains(t, b.String(), "[WARN] logger/sentry_test.go:")
	require.Contains(t, b.String(), "'careful'")
}

func TestSentryLoggerSkip(t *testing.T) {
	// Arrange
	l := logger.NewLogger(
		logger.WithLogger(newTestLogger(new(bytes.Buffer))),
		logger.WithSentry("https://public@sentry.example.com/1"),
	).(logger.SkipLogger)

	// Act
	skipped := l.AddSkip(3)

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 3, skipped.Skip())
	_, ok := skipped.(*logger.SentryLogger)
	require.True(t, ok)
}
