/*

Package logger provides logging functionality to autoroute by defining the required behavior in [Logger]
and providing an implementation of it with [StdLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, if [StdLogger] is initialized with [LogLevelWarn],
only [*StdLogger.Warn], [*StdLogger.Error], and [*StdLogger.Fatal] produce messages.

# StdLogger

Log messages emitted by [StdLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2022/04/28 15:55:21 [DEBUG] autoroute/autoroute.go:143 'registered route' log_context: {"route":{"handler":"FetchStatus","method":"GET","path":"/fetch-status"}}

The log context is a JSON-encoded [*LogContext].
It allows for including additional data inessential to the message proper.

# SentryLogger

When a Sentry DSN is available, [NewLogger] returns a [SentryLogger],
which forwards the error in a [LogContext] to Sentry for messages logged at WARN or above.

# Discard

[Discard] emits nothing, and is what autoroute logs to unless told otherwise.
*/
package logger
