package logger

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const knownFrames = 2

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val, ignoring case, into a LogLevel.
func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(val) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	return map[LogLevel]string{
		LogLevelDebug: "[DEBUG]",
		LogLevelInfo:  "[INFO]",
		LogLevelWarn:  "[WARN]",
		LogLevelError: "[ERROR]",
		LogLevelFatal: "[FATAL]",
		LogLevelUnk:   "[UNK]",
	}[ll]
}

var levelColors = map[LogLevel]color.Attribute{
	LogLevelDebug: color.FgWhite,
	LogLevelInfo:  color.FgBlue,
	LogLevelWarn:  color.FgYellow,
	LogLevelError: color.FgRed,
	LogLevelFatal: color.FgMagenta,
}

// StdLogger implements Logger using log.
type StdLogger struct {
	color     *bool
	env       string
	l         *log.Logger
	ll        LogLevel
	sentryDsn string
	skip      int
}

// NewLogger constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is DEVELOPMENT.
// The default log level is INFO.
//
// When a Sentry DSN is configured, through WithSentry or SENTRY_DSN,
// the returned Logger is a *SentryLogger wrapping the *StdLogger.
func NewLogger(opts ...LoggerOptFn) Logger {
	l := &StdLogger{
		env: getEnvOrString("ENVIRONMENT", "DEVELOPMENT"),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.sentryDsn == "" {
		l.sentryDsn = os.Getenv("SENTRY_DSN")
	}

	if l.sentryDsn != "" {
		l.Info("Sentry DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, l.sentryDsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *StdLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *StdLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *StdLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *StdLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *StdLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *StdLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the StdLogger.
func (l *StdLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *StdLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *StdLogger) log(level LogLevel, msg string, ctx *LogContext) {
	var caller string
	if ctx != nil && ctx.Caller != "" {
		caller = ctx.Caller
	} else {
		// NOTE(dlk): skip the number of frames the StdLogger has
		// and however many the StdLogger is configured with
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		caller = immediateFilepath(file) + ":" + strconv.Itoa(line)
	}

	c := color.New(levelColors[level])
	if l.color != nil {
		if *l.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	msg = c.Sprintf("%s %s '%s'", level, caller, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// Discard is a Logger emitting nothing.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, *LogContext) {}
func (discard) Error(string, *LogContext) {}
func (discard) Fatal(string, *LogContext) {}
func (discard) Info(string, *LogContext)  {}
func (discard) Warn(string, *LogContext)  {}
func (discard) LogLevel() LogLevel        { return LogLevelUnk }

func getEnvOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
