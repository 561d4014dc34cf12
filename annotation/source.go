package annotation

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// A Symbol identifies a compiled function by the package it was declared in
// and its name within that package.
//
// Methods carry their receiver: "(*Controller).FetchStatus" or "Controller.FetchStatus".
// Function literals carry their enclosing function: "TestRegister.func1".
type Symbol struct {
	Package string
	Name    string
}

// String returns the fully qualified symbol name.
func (s Symbol) String() string { return s.Package + "." + s.Name }

// Literal reports whether the Symbol names a function literal or a compiler-generated wrapper.
//
// The compiler names literals after their enclosing function: "Outer.func1", "Outer.func1.2", "glob..func1".
func (s Symbol) Literal() bool {
	return literalRegex.MatchString(s.Name) || strings.HasSuffix(s.Name, "-fm")
}

var literalRegex = regexp.MustCompile(`\.func\d+(\.|$)`)

// Lookup resolves the runtime symbol of the function fn
// along with the file and line it was compiled from.
func Lookup(fn any) (sym Symbol, file string, line int, err error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Symbol{}, "", 0, fmt.Errorf("%w: %T is not a function", ErrSourceUnavailable, fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Symbol{}, "", 0, fmt.Errorf("%w: no symbol for %T", ErrSourceUnavailable, fn)
	}

	file, line = rf.FileLine(rf.Entry())
	return SplitSymbol(rf.Name()), file, line, nil
}

// SplitSymbol divides a runtime function name into its package path and name.
//
//	github.com/acme/app/status.(*Controller).Fetch => github.com/acme/app/status, (*Controller).Fetch
func SplitSymbol(name string) Symbol {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return Symbol{Name: name}
	}

	dot += slash + 1
	return Symbol{Package: name[:dot], Name: name[dot+1:]}
}

// Source retrieves the text of the declaration of fn,
// starting at its doc comment and ending with its closing brace.
//
// Source reads and parses the file fn was compiled from,
// so that file must still exist where the compiler found it.
// An error wrapping [ErrSourceUnavailable] returns when it does not,
// when fn is a function literal, or when no matching declaration is found.
func Source(fn any) (string, error) {
	sym, file, _, err := Lookup(fn)
	if err != nil {
		return "", err
	}

	if sym.Literal() {
		return "", fmt.Errorf("%w: %s is not a declared function", ErrSourceUnavailable, sym)
	}

	src, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrSourceUnavailable, sym, err)
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, src, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrSourceUnavailable, sym, err)
	}

	recv, name := splitReceiver(sym.Name)
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Name.Name != name || receiverName(fd) != recv {
			continue
		}

		start := fd.Pos()
		if fd.Doc != nil {
			start = fd.Doc.Pos()
		}

		return string(src[fset.Position(start).Offset:fset.Position(fd.End()).Offset]), nil
	}

	return "", fmt.Errorf("%w: %s not declared in %s", ErrSourceUnavailable, sym, file)
}

// Lines returns the annotation lines written before the first func keyword in src.
//
// Each line returns trimmed and stripped of its comment marker.
func Lines(src string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if isFuncKeyword(line) {
			break
		}

		line = stripComment(line)
		if strings.HasPrefix(line, Marker) {
			lines = append(lines, line)
		}
	}

	return lines
}

// Extract recovers the annotations declared on fn.
func Extract(fn any) ([]Decorator, error) {
	src, err := Source(fn)
	if err != nil {
		return nil, err
	}

	return ParseAll(Lines(src)), nil
}

// isFuncKeyword reports whether line opens a function declaration.
func isFuncKeyword(line string) bool {
	return line == "func" || strings.HasPrefix(line, "func ") || strings.HasPrefix(line, "func(")
}

// stripComment removes line and block comment markers from the front of line.
func stripComment(line string) string {
	for _, prefix := range []string{commentMarker, "/*", "*"} {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimPrefix(line, prefix)
			break
		}
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "*/"))
}

// splitReceiver separates a symbol name like "(*Controller).Fetch" into "Controller" and "Fetch".
func splitReceiver(name string) (string, string) {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return "", name
	}

	recv := strings.Trim(name[:dot], "()*")
	if i := strings.Index(recv, "["); i >= 0 {
		recv = recv[:i]
	}

	return recv, name[dot+1:]
}

// receiverName returns the base type name of fd's receiver, if any.
func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}

	expr := fd.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}
