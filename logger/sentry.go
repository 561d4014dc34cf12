package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// sentryFrames is how many frames a SentryLogger adds between its caller and the StdLogger.
const sentryFrames = 2

// Levels a SentryLogger reports to Sentry at, along with the log.
var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// A SentryLogger writes logs with a StdLogger
// and reports errors logged at WARN or above to Sentry,
// tagged with the route and client the LogContext describes.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger initializes Sentry with dsn and wraps tl in a SentryLogger.
//
// If Sentry cannot be initialized, the error is logged and tl returns.
func NewSentryLogger(tl *StdLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  tl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		tl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return tl
	}

	return &SentryLogger{l: tl.AddSkip(tl.Skip() + sentryFrames)}
}

// AddSkip sets the number of frames to scroll back past the caller
// when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(i + sentryFrames)}
}

// Skip returns the number of frames scrolled back past the caller.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() - sentryFrames }

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.write(LogLevelDebug, msg, ctx) }

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.write(LogLevelInfo, msg, ctx) }

// Warn writes a warning log and reports it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) { sl.write(LogLevelWarn, msg, ctx) }

// Error writes an error log and reports it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) { sl.write(LogLevelError, msg, ctx) }

// Fatal writes a fatal log and reports it to Sentry.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) { sl.write(LogLevelFatal, msg, ctx) }

// write logs msg at level and reports it when level has a Sentry counterpart.
func (sl *SentryLogger) write(level LogLevel, msg string, ctx *LogContext) {
	if sl.l.LogLevel() > level {
		return
	}

	switch level {
	case LogLevelDebug:
		sl.l.Debug(msg, ctx)
	case LogLevelInfo:
		sl.l.Info(msg, ctx)
	case LogLevelWarn:
		sl.l.Warn(msg, ctx)
	case LogLevelError:
		sl.l.Error(msg, ctx)
	case LogLevelFatal:
		sl.l.Fatal(msg, ctx)
	}

	if lvl, ok := sentryLevels[level]; ok {
		report(lvl, msg, ctx)
	}
}

// report captures LogContext.Error, with msg as a breadcrumb leading up to it.
func report(level sentry.Level, msg string, ctx *LogContext) {
	if ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetTags(sentryTags(ctx))
		scope.AddBreadcrumb(&sentry.Breadcrumb{Category: "log", Message: msg, Level: level}, 1)

		if ctx.IPAddress != "" {
			scope.SetUser(sentry.User{IPAddress: ctx.IPAddress})
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		sentry.CaptureException(ctx.Error)
	})
}

// sentryTags lists what ctx says about the route, keyed as Sentry tags.
func sentryTags(ctx *LogContext) map[string]string {
	tags := make(map[string]string)
	if ctx.Route == nil {
		return tags
	}

	for k, v := range map[string]string{
		"route.handler": ctx.Route.Handler,
		"route.method":  ctx.Route.Method,
		"route.path":    ctx.Route.Path,
	} {
		if v != "" {
			tags[k] = v
		}
	}

	return tags
}
