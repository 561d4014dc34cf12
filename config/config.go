package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/xy-planning-network/autoroute/logger"
)

// Environment variables Load reads.
const (
	baseURLEnvVar   = "BASE_URL"
	environmentVar  = "ENVIRONMENT"
	hostEnvVar      = "HOST"
	logLevelEnvVar  = "LOG_LEVEL"
	methodsEnvVar   = "AUTOROUTE_METHODS"
	portEnvVar      = "PORT"
	prefixEnvVar    = "AUTOROUTE_PREFIX"
	sentryDsnEnvVar = "SENTRY_DSN"
	shutdownEnvVar  = "SHUTDOWN_TIMEOUT"
)

// DefaultEnvFile is the file Load reads when given none.
const DefaultEnvFile = ".env"

// Config is what a server routing handlers with autoroute needs to start.
type Config struct {
	// BaseURL is the origin allowed to make cross-origin requests. Empty disables CORS.
	BaseURL  string
	Env      Environment
	Host     string
	LogLevel logger.LogLevel

	// Methods are the HTTP methods handlers are routed under.
	Methods []string
	Port    int

	// Prefix mounts every routed handler under a path, e.g., /api/v1.
	Prefix          string
	SentryDSN       string
	ShutdownTimeout time.Duration
}

// Addr joins Host and Port for [net/http.Server.Addr].
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// Load reads files into the environment, without overriding variables already set,
// and builds a Config from it.
//
// When no files are given, DefaultEnvFile is read if it exists.
func Load(files ...string) (Config, error) {
	optional := len(files) == 0
	if optional {
		files = []string{DefaultEnvFile}
	}

	if err := godotenv.Load(files...); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	c := Config{
		BaseURL:         EnvVarOrString(baseURLEnvVar, ""),
		Env:             EnvVarOrEnv(environmentVar, Development),
		Host:            EnvVarOrString(hostEnvVar, "localhost"),
		LogLevel:        EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo),
		Methods:         EnvVarOrList(methodsEnvVar, []string{"get"}),
		Port:            EnvVarOrInt(portEnvVar, 8080),
		Prefix:          EnvVarOrString(prefixEnvVar, ""),
		SentryDSN:       EnvVarOrString(sentryDsnEnvVar, ""),
		ShutdownTimeout: EnvVarOrDuration(shutdownEnvVar, 10*time.Second),
	}

	return c, c.Validate()
}

// Validate asserts c can start a server.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %s %d out of range", ErrBadConfig, portEnvVar, c.Port)
	}

	if c.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrBadConfig, baseURLEnvVar, err)
		}
	}

	if c.Prefix != "" && c.Prefix[0] != '/' {
		return fmt.Errorf("%w: %s %q must begin with /", ErrBadConfig, prefixEnvVar, c.Prefix)
	}

	return nil
}
