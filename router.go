// Package routex implements a pattern-based URL router: a compiled,
// deterministic finite automaton that simultaneously matches every
// registered pattern against an incoming path in a single left-to-right
// pass, recovering named placeholder captures from the traversal.
//
// A Router accumulates (method, pattern, handler) registrations and
// compiles them lazily: the first Match after a registration (or an
// explicit Rebuild) runs the pattern compiler, determinizer and compactor
// described in the package's internal/automaton subpackage. A Match against
// an up-to-date router compiles nothing; it walks the compact automaton.
//
// Basic usage:
//
//	r := routex.New("")
//	r.Add(routex.MethodGet, "/users/:id", showUser)
//	r.Match("/users/42", func(method routex.Method, handler any, captures map[string]string) bool {
//	    fmt.Println(captures["id"]) // "42"
//	    return true
//	})
package routex

import (
	"strings"

	"github.com/coregx/routex/internal/automaton"
	"github.com/coregx/routex/internal/prefilter"
)

// Method is an opaque HTTP method token. Routex does not interpret it
// beyond equality comparison; callers are free to register and match on
// values outside the predeclared set.
type Method string

// Predeclared methods for the common HTTP verbs.
const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
)

// Visitor is called once per terminal whose pattern matches a path, in
// registration order, until it returns true.
type Visitor func(method Method, handler any, captures map[string]string) bool

// routeEntry is the opaque data automaton.Terminal carries per registered
// pattern.
type routeEntry struct {
	method  Method
	handler any
}

// Router holds a set of registered patterns and the compact automaton
// compiled from them. The zero value is not usable; construct one with New
// or NewWithConfig.
type Router struct {
	prefix    string
	config    Config
	graph     *automaton.Graph
	terminals []*automaton.Terminal
	compact   *automaton.Compact
	gate      *prefilter.Gate
	upToDate  bool
}

// New returns a Router with an empty automaton. prefix is stripped from
// incoming paths by Serve; it plays no role in Match or Add.
func New(prefix string) *Router {
	return NewWithConfig(prefix, DefaultConfig())
}

// NewWithConfig is like New but with an explicit Config.
func NewWithConfig(prefix string, config Config) *Router {
	return &Router{
		prefix: prefix,
		config: config,
		graph:  automaton.NewGraph(),
	}
}

// Add registers a pattern for method, to be passed to handler when matched.
// It returns r for chaining. Registration errors reject the call and leave
// the router's existing routes unchanged.
//
// Example:
//
//	r := routex.New("")
//	r.Add(routex.MethodGet, "/health", healthHandler)
func (r *Router) Add(method Method, pattern string, handler any) (*Router, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == 0 {
			return nil, ErrNulByte
		}
	}

	idx := len(r.terminals)
	names, err := r.graph.AddPattern(pattern, idx)
	if err != nil {
		return nil, err
	}

	r.terminals = append(r.terminals, &automaton.Terminal{
		Pattern: pattern,
		Names:   names,
		Data:    routeEntry{method: method, handler: handler},
	})
	r.upToDate = false
	return r, nil
}

// Rebuild forces eager (re)compilation of the compact automaton. Add
// already marks the router stale; calling Rebuild is only necessary to pay
// compilation cost ahead of the first Match, e.g. at startup.
func (r *Router) Rebuild() {
	r.compact = automaton.Build(r.graph, r.terminals)
	if r.config.EnablePrefilter {
		patterns := make([]string, len(r.terminals))
		for i, t := range r.terminals {
			patterns[i] = t.Pattern
		}
		r.gate = prefilter.Build(patterns)
	} else {
		r.gate = nil
	}
	r.upToDate = true
}

// Match rebuilds the automaton if stale, then walks path and invokes visit
// once per matching terminal, in registration order, until visit returns
// true. It returns whether any invocation did.
func (r *Router) Match(path string, visit Visitor) bool {
	if !r.upToDate {
		r.Rebuild()
	}
	pathBytes := []byte(path)
	if r.gate != nil && !r.gate.MayMatch(pathBytes) {
		return false
	}
	if r.compact == nil {
		return false
	}
	return r.compact.Match(pathBytes, r.terminals, func(terminal int, captures map[string]string) bool {
		entry := r.terminals[terminal].Data.(routeEntry)
		return visit(entry.method, entry.handler, captures)
	})
}

// Prefix returns the router's configured prefix, as passed to New.
func (r *Router) Prefix() string {
	return r.prefix
}

// stripPrefix reports whether path begins with the router's prefix and, if
// so, returns the remainder.
func (r *Router) stripPrefix(path string) (string, bool) {
	return strings.CutPrefix(path, r.prefix)
}
