package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"runtime"
)

var (
	_ encoding.TextMarshaler = LogContext{}
)

const callerTmpl = "%s:%d"

// A LogRoute describes the route a logging event concerns.
type LogRoute struct {
	Handler string
	Method  string
	Path    string
}

// A LogContext provides additional information and configuration
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the caller file and line number with the provided value.
	//
	// Caller is not logged in the text of a LogContext.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// IPAddress is the address of the client whose request is being served.
	IPAddress string

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// Route is the route being registered or served during the logging event.
	Route *LogRoute
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// Values in LogContext.Data that cannot be represented in JSON will cause an error to be thrown.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.IPAddress != "" {
		m["ip_address"] = lc.IPAddress
	}

	if lc.Request != nil {
		m["request"] = map[string]any{
			"method": lc.Request.Method,
			"url":    lc.Request.URL.String(),
		}
	}

	if lc.Route != nil {
		r := make(map[string]any)
		if lc.Route.Handler != "" {
			r["handler"] = lc.Route.Handler
		}
		if lc.Route.Method != "" {
			r["method"] = lc.Route.Method
		}
		if lc.Route.Path != "" {
			r["path"] = lc.Route.Path
		}
		if len(r) > 0 {
			m["route"] = r
		}
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err)
	}
	return string(b)
}

// CurrentCaller retrieves the caller for the caller of CurrentCaller,
// formatted for using as a value in LogContext.Caller.
//
//	myFunc() { 		<- returns this caller
//		func() {
//			CurrentCaller()
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
}

// immediateFilepath trims file down to its parent directory and name.
//
// e.g.,:
// /home/dlk/my-project/main.go => my-project/main.go
// /home/dlk/my-project/internal/internal.go => internal/internal.go
func immediateFilepath(file string) string {
	dir, name := path.Split(file)
	return path.Join(path.Base(dir), name)
}
