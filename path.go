package autoroute

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// ExcludePrefix marks a handler that must never be routed automatically.
// It is compared against the snake case form of the handler's name,
// so both noroute_fetch and NorouteFetch carry it.
const ExcludePrefix = "noroute_"

// PathFor derives the URL path for the handler named name.
//
// A name without underscores is taken as camel case and first converted to snake case,
// keeping digits on the word they follow.
// A name with underscores is already snake case and keeps its letter case.
// Then every underscore becomes a hyphen and a leading slash is added:
//
//	fetch_status    => /fetch-status
//	fetch_Status    => /fetch-Status
//	FetchStatus     => /fetch-status
//	FetchHTTPStatus => /fetch-http-status
//	FetchV2         => /fetch-v2
//	GetOAuth2Token  => /get-o-auth2-token
//
// The conversion is lossy; use At or WithPath for names it does not suit.
func PathFor(name string) string {
	return "/" + strings.ReplaceAll(snake(name), "_", "-")
}

// Excluded reports whether name carries ExcludePrefix.
func Excluded(name string) bool {
	return strings.HasPrefix(snake(name), ExcludePrefix)
}

// snake converts a camel case name to snake case.
// Names holding an underscore or no upper case letter return as is.
func snake(name string) string {
	if strings.Contains(name, "_") || strings.IndexFunc(name, unicode.IsUpper) < 0 {
		return name
	}

	s := strcase.ToSnake(name)
	b := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i > 0 && i+1 < len(s) && !isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}

	return b.String()
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
