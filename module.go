package autoroute

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"

	"github.com/xy-planning-network/autoroute/annotation"
	"github.com/xy-planning-network/autoroute/http/router"
)

// A Module is the ordered set of named values a Go package exposes to autoroute:
// its handlers, its routers, and anything else.
//
// Go cannot list a package's functions at run time,
// so a package declares its members on a Module, in the order it declares them in source.
//
// A Module is not safe for concurrent use.
type Module struct {
	// Path is the import path of the package the Module stands for.
	// Handlers compiled in any other package are never routed.
	Path string

	err     error
	index   map[string]int
	members []Member
}

// NewModule constructs an empty *Module for the package at path.
// If path is empty, the import path of the package calling NewModule is used.
func NewModule(path string) *Module {
	if path == "" {
		path = callerPackage(2)
	}

	return &Module{Path: path, index: make(map[string]int)}
}

// A Member is a named value of a [Module].
type Member struct {
	Name  string
	Value any

	annotations []string
	path        string
	routed      bool

	// symbol resolves the source and package of Value
	// when Value itself cannot, as with method values.
	symbol any
}

// Annotations returns the annotation lines attached with Annotate.
func (mem Member) Annotations() []string { return append([]string{}, mem.annotations...) }

// Handler returns Value as an [http.HandlerFunc], if it is one.
//
// Only functions are handlers: a value implementing [http.Handler]
// is not, since a Router may well be one.
func (mem Member) Handler() (http.HandlerFunc, bool) {
	switch fn := mem.Value.(type) {
	case http.HandlerFunc:
		return fn, fn != nil
	case func(http.ResponseWriter, *http.Request):
		return fn, fn != nil
	default:
		return nil, false
	}
}

// Router returns Value as a [router.Router], if it is one.
//
// A nil pointer is not a Router, even when its type implements one.
func (mem Member) Router() (router.Router, bool) {
	r, ok := mem.Value.(router.Router)
	if !ok || r == nil {
		return nil, false
	}

	switch rv := reflect.ValueOf(r); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		if rv.IsNil() {
			return nil, false
		}
	}

	return r, true
}

// Routed reports whether the Member was marked with Routed.
func (mem Member) Routed() bool { return mem.routed }

// func returns the function to resolve source and package lookups with.
func (mem Member) fn() any {
	if mem.symbol != nil {
		return mem.symbol
	}

	return mem.Value
}

// A MemberOption attaches metadata to a Member when adding it to a Module.
type MemberOption func(*Member)

// Annotate attaches annotation lines to the Member,
// as if written in the doc comment of its declaration.
func Annotate(lines ...string) MemberOption {
	return func(mem *Member) {
		mem.annotations = append(mem.annotations, lines...)
	}
}

// At routes the Member at path instead of the path derived from its name.
func At(path string) MemberOption {
	return func(mem *Member) {
		mem.path = path
	}
}

// Routed marks the Member as already routed, so autoroute leaves it alone.
func Routed() MemberOption {
	return func(mem *Member) {
		mem.routed = true
	}
}

// Add appends v to m under name.
//
// Adding a name m already holds replaces its value in place.
// If name is empty and v is a declared function, the function's name is used.
//
// Add returns m so calls can be chained; errors surface through Err.
func (m *Module) Add(name string, v any, opts ...MemberOption) *Module {
	if name == "" {
		sym, _, _, err := annotation.Lookup(v)
		if err != nil || sym.Literal() {
			m.setErr(fmt.Errorf("%w: %T added without a name", ErrNotValid, v))
			return m
		}

		_, name = splitMethod(sym.Name)
	}

	mem := Member{Name: name, Value: v}
	for _, opt := range opts {
		opt(&mem)
	}

	m.put(mem)
	return m
}

// Func adds the declared function fn under its own name.
func (m *Module) Func(fn any, opts ...MemberOption) *Module {
	return m.Add("", fn, opts...)
}

// Methods adds every exported method of recv with a handler signature,
// named after the method, in the order reflection lists them.
func (m *Module) Methods(recv any, opts ...MemberOption) *Module {
	rv := reflect.ValueOf(recv)
	if !rv.IsValid() {
		m.setErr(fmt.Errorf("%w: nil receiver", ErrNotValid))
		return m
	}

	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		meth := rt.Method(i)
		fn, ok := rv.Method(i).Interface().(func(http.ResponseWriter, *http.Request))
		if !ok {
			continue
		}

		// NOTE: value receiver methods reached through a pointer, and methods promoted
		// from embedded fields, resolve to a generated wrapper without source
		sym := meth.Func.Interface()
		if dm, ok := declaredMethod(rt, meth.Name); ok {
			sym = dm.Func.Interface()
		}

		mem := Member{Name: meth.Name, Value: fn, symbol: sym}
		for _, opt := range opts {
			opt(&mem)
		}

		m.put(mem)
	}

	return m
}

// Err returns the first error met while adding members.
func (m *Module) Err() error { return m.err }

// Lookup finds the member named name.
func (m *Module) Lookup(name string) (Member, bool) {
	i, ok := m.index[name]
	if !ok {
		return Member{}, false
	}

	return m.members[i], true
}

// Members returns a copy of m's members in the order they were added.
func (m *Module) Members() []Member {
	return append([]Member{}, m.members...)
}

// put adds or replaces mem.
func (m *Module) put(mem Member) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, ok := m.index[mem.Name]; ok {
		m.members[i] = mem
		return
	}

	m.index[mem.Name] = len(m.members)
	m.members = append(m.members, mem)
}

func (m *Module) setErr(err error) {
	if m.err == nil {
		m.err = err
	}
}

// autogenerated is the file the runtime reports for compiler-written wrappers.
const autogenerated = "<autogenerated>"

// callerPackage returns the import path of the package skip frames up the stack.
func callerPackage(skip int) string {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+1, pcs) == 0 {
		return ""
	}

	frame, _ := runtime.CallersFrames(pcs).Next()
	return annotation.SplitSymbol(frame.Function).Package
}

// declaredMethod finds the method named name as written in source,
// searching t and then its embedded fields, shallowest first, as Go promotes them.
func declaredMethod(t reflect.Type, name string) (reflect.Method, bool) {
	seen := make(map[reflect.Type]bool)
	queue := []reflect.Type{t}
	for len(queue) > 0 {
		t, queue = queue[0], queue[1:]
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		if t.Kind() == reflect.Interface || seen[t] {
			continue
		}
		seen[t] = true

		for _, c := range []reflect.Type{t, reflect.PointerTo(t)} {
			if meth, ok := c.MethodByName(name); ok && !generated(meth) {
				return meth, true
			}
		}

		if t.Kind() != reflect.Struct {
			continue
		}

		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.Anonymous {
				queue = append(queue, f.Type)
			}
		}
	}

	return reflect.Method{}, false
}

// generated reports whether the compiler wrote meth rather than a source file.
func generated(meth reflect.Method) bool {
	_, file, _, err := annotation.Lookup(meth.Func.Interface())
	return err != nil || file == autogenerated
}

// splitMethod separates "(*Controller).Fetch" into "(*Controller)" and "Fetch".
func splitMethod(name string) (string, string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}

	return "", name
}
