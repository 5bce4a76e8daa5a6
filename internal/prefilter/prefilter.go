// Package prefilter provides a cheap, purely-accelerating gate in front of
// the compact automaton: an Aho-Corasick automaton over each pattern's
// literal prefix, used to reject paths that cannot possibly match any
// registered pattern before paying for a full automaton walk.
//
// A gate never changes which paths match; it only short-circuits Match for
// paths no pattern's literal prefix could ever lead to. This mirrors the
// teacher's meta.Engine literal-alternation bypass (ahocorasick.Builder
// feeding an Automaton consulted by IsMatch before falling back to the full
// engine), adapted from "does any literal alternative occur in the
// haystack" to "does any route's fixed prefix occur anywhere in the path".
package prefilter

import "github.com/coregx/ahocorasick"

// Gate wraps an Aho-Corasick automaton built over the literal prefixes of a
// route set.
type Gate struct {
	automaton *ahocorasick.Automaton
	// hasPrefixless is set when at least one registered pattern begins with
	// a placeholder or the wildcard and so has no usable literal prefix.
	// Such a terminal could match regardless of what the prefix automaton
	// reports, so the gate must disable itself entirely rather than risk
	// rejecting a path that a prefixless terminal would have accepted.
	hasPrefixless bool
}

// LiteralPrefix returns the literal bytes of pattern up to (but not
// including) the first ':' or '*'. The result is empty iff pattern itself
// begins with a placeholder or the wildcard.
func LiteralPrefix(pattern string) []byte {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == ':' || pattern[i] == '*' {
			return []byte(pattern[:i])
		}
	}
	return []byte(pattern)
}

// Build constructs a Gate over the literal prefixes of patterns. It never
// fails closed: if the underlying automaton cannot be built, or if any
// pattern yields an empty prefix, the returned Gate's MayMatch always
// reports true.
func Build(patterns []string) *Gate {
	g := &Gate{}
	var prefixes [][]byte
	for _, p := range patterns {
		lit := LiteralPrefix(p)
		if len(lit) == 0 {
			g.hasPrefixless = true
			continue
		}
		prefixes = append(prefixes, lit)
	}
	if g.hasPrefixless || len(prefixes) == 0 {
		return g
	}

	b := ahocorasick.NewBuilder()
	for _, lit := range prefixes {
		b.AddPattern(lit)
	}
	automaton, err := b.Build()
	if err != nil {
		// A build failure disables the gate rather than rejecting
		// registrations the router itself already accepted.
		g.hasPrefixless = true
		return g
	}
	g.automaton = automaton
	return g
}

// MayMatch reports whether path could possibly match some registered
// pattern. A false result is a guarantee that the full automaton walk would
// also reject path; a true result is only a hint.
func (g *Gate) MayMatch(path []byte) bool {
	if g.hasPrefixless || g.automaton == nil {
		return true
	}
	return g.automaton.IsMatch(path)
}
