package routex

// Handle is invoked for a single matching route: it receives the opaque
// handler registered with Add and the captured placeholder values, and
// reports whether it produced a response. A false return lets Serve (and,
// for HEAD, its GET retry) continue searching.
type Handle func(handler any, captures map[string]string) bool

// Serve implements the reference dispatcher described alongside the core:
// it strips the router's prefix, matches the remaining path filtering on
// method, and retries once as GET if a HEAD request found nothing. It is
// the only place in this package that knows about the HEAD/GET fallback;
// Match and the automaton beneath it are method-agnostic.
//
// Example:
//
//	r := routex.New("/api")
//	r.Add(routex.MethodGet, "/users/:id", showUser)
//	r.Serve(routex.MethodGet, "/api/users/42", func(handler any, captures map[string]string) bool {
//	    return true // response written
//	})
func (r *Router) Serve(method Method, path string, handle Handle) bool {
	stripped, ok := r.stripPrefix(path)
	if !ok {
		return false
	}

	if r.dispatchOnce(method, stripped, handle) {
		return true
	}
	if method == MethodHead {
		return r.dispatchOnce(MethodGet, stripped, handle)
	}
	return false
}

func (r *Router) dispatchOnce(method Method, path string, handle Handle) bool {
	return r.Match(path, func(m Method, handler any, captures map[string]string) bool {
		if m != method {
			return false
		}
		return handle(handler, captures)
	})
}
