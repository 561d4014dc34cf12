package annotation

import (
	"regexp"
	"strings"
)

const (
	// Marker begins every annotation line.
	Marker = "@"

	commentMarker = "//"
)

var decoratorRegex = regexp.MustCompile(`^(\w[\w.]*)\s*(\((.*)\))?`)

// A Decorator is a parsed annotation line.
//
// Args holds the literal text of each argument, trimmed but otherwise uninterpreted.
type Decorator struct {
	Name string
	Args []string
}

// HasPrefix reports whether the Decorator's name begins with ident.
//
// e.g., both @router.get and @router2.get have the prefix "router".
func (d Decorator) HasPrefix(ident string) bool {
	return strings.HasPrefix(d.Name, ident)
}

// String renders d as an annotation line.
func (d Decorator) String() string {
	if len(d.Args) == 0 {
		return Marker + d.Name
	}

	return Marker + d.Name + "(" + strings.Join(d.Args, ", ") + ")"
}

// Parse converts one annotation line into a [Decorator].
//
// The line may still carry its comment marker.
// A line not shaped like a dotted identifier followed by an optional argument list
// yields a Decorator named by the stripped text with no Args.
func Parse(line string) Decorator {
	deco := strings.TrimSpace(line)
	deco = strings.TrimSpace(strings.TrimPrefix(deco, commentMarker))
	deco = strings.TrimLeft(deco, Marker)

	m := decoratorRegex.FindStringSubmatch(deco)
	if m == nil {
		return Decorator{Name: deco, Args: []string{}}
	}

	args := []string{}
	if m[3] != "" {
		for _, arg := range strings.Split(m[3], ",") {
			args = append(args, strings.TrimSpace(arg))
		}
	}

	return Decorator{Name: m[1], Args: args}
}

// ParseAll parses each line with [Parse].
func ParseAll(lines []string) []Decorator {
	decos := make([]Decorator, 0, len(lines))
	for _, line := range lines {
		decos = append(decos, Parse(line))
	}

	return decos
}
