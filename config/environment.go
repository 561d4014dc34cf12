package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/autoroute/logger"
)

// An Environment is a different context in which an autoroute app operates.
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Demo, Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }

// EnvVarOrBool gets the environment variable for the provided key and
// returns whether it matches "true" or "false" (after lower casing it)
// or the default value.
func EnvVarOrBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// EnvVarOrDuration gets the environment variable for the provided key,
// parses it into a [time.Duration], or, returns
// the default [time.Duration].
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return d
}

// EnvVarOrEnv gets the environment variable for the provided key,
// casts it into an [Environment],
// or returns the provided default [Environment] if key is not a valid [Environment].
func EnvVarOrEnv(key string, def Environment) Environment {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	env := Environment(strings.ToUpper(val))
	if err := env.Valid(); err != nil {
		return def
	}

	return env
}

// EnvVarOrInt gets the environment variable for the provided key,
// creates an int from the retrieved value,
// or returns the provided default
// if the value is not a valid int.
func EnvVarOrInt(key string, def int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrList gets the environment variable for the provided key,
// splits it on commas and trims each element,
// or returns the provided default when the variable is unset or holds only blanks.
func EnvVarOrList(key string, def []string) []string {
	list := make([]string, 0)
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}

	if len(list) == 0 {
		return def
	}

	return list
}

// EnvVarOrLogLevel gets the environment variable for the provided key,
// creates a [logger.LogLevel] from the retrieved value,
// or returns the provided default [logger.LogLevel]
// if the value is an unknown [logger.LogLevel].
func EnvVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	ll := logger.NewLogLevel(os.Getenv(key))
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}

// EnvVarOrString gets the environment variable for the provided key or the provided default string.
func EnvVarOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	return val
}
