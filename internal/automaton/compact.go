package automaton

import "github.com/coregx/routex/internal/conv"

// Terminal is the per-pattern metadata the compact automaton and matcher
// consult to recover captures. It is owned by the caller (normally the
// router's terminal list) and mutated in place by Build: NodeToPlaceholder
// is populated fresh on every rebuild.
type Terminal struct {
	Pattern           string
	Data              any
	Names             []string
	NodeToPlaceholder map[int32]int // compact-node index -> placeholder index
}

// termTag is a flattened (terminal-index, placeholder-index-or-NONE) entry.
type termTag struct {
	Terminal    int
	Placeholder int // -1 means NONE
}

// compactNode is one row of the compact automaton: a dense 257-slot edge
// table and a half-open slice into the flat terminal-tag array.
type compactNode struct {
	edge               [257]int32
	termStart, termEnd int32
}

// Compact is the cache-friendly, flattened representation of a determinized
// graph described in §4.3: the only structure needed at match time.
type Compact struct {
	nodes    []compactNode
	termTags []termTag
}

// Build determinizes g and flattens the result into a Compact automaton,
// populating each terminal's NodeToPlaceholder map as it goes. terminals
// must be indexed identically to the terminal indices passed to
// Graph.AddPattern.
func Build(g *Graph, terminals []*Terminal) *Compact {
	dg := determinize(g)

	for _, t := range terminals {
		for k := range t.NodeToPlaceholder {
			delete(t.NodeToPlaceholder, k)
		}
		if t.NodeToPlaceholder == nil {
			t.NodeToPlaceholder = make(map[int32]int)
		}
	}

	c := &Compact{nodes: make([]compactNode, len(dg.nodes))}
	for i, dn := range dg.nodes {
		nodeID := conv.IntToInt32(i)
		cn := &c.nodes[i]
		cn.edge = dn.edge
		cn.termStart = conv.IntToInt32(len(c.termTags))
		for _, tg := range dn.tags {
			placeholderIdx := -1
			if tg.placeholder != "" {
				term := terminals[tg.terminal]
				for pi, name := range term.Names {
					if name == tg.placeholder {
						placeholderIdx = pi
						break
					}
				}
				term.NodeToPlaceholder[nodeID] = placeholderIdx
			}
			c.termTags = append(c.termTags, termTag{Terminal: tg.terminal, Placeholder: placeholderIdx})
		}
		cn.termEnd = conv.IntToInt32(len(c.termTags))
	}
	return c
}

// NodeCount returns the number of states in the compact automaton.
func (c *Compact) NodeCount() int {
	return len(c.nodes)
}

// Visit is the callback invoked once per matching terminal, in insertion
// (registration) order, until it returns true.
type Visit func(terminal int, captures map[string]string) bool

// Match walks text to the unique terminal node it reaches (if any), then
// for each terminal tag recorded there replays the walk to recover
// placeholder captures, per §4.4. It returns true iff some invocation of
// visit returned true.
func (c *Compact) Match(text []byte, terminals []*Terminal, visit Visit) bool {
	cur := int32(0)
	for _, b := range text {
		next := c.nodes[cur].edge[symOf(int(b))]
		if next < 0 {
			return false
		}
		cur = next
	}
	term := c.nodes[cur].edge[symEnd]
	if term < 0 {
		return false
	}

	row := c.nodes[term]
	for ti := row.termStart; ti < row.termEnd; ti++ {
		tg := c.termTags[ti]
		terminal := terminals[tg.Terminal]
		captures := make([]string, len(terminal.Names))
		haveCapture := make([]bool, len(terminal.Names))

		cur2 := int32(0)
		activePlaceholder := -1
		activeStart := 0
		for i, b := range text {
			v, ok := terminal.NodeToPlaceholder[cur2]
			if !ok {
				v = -1
			}
			if v != activePlaceholder && activePlaceholder != -1 {
				// text[i-1] is the literal byte whose edge left the
				// placeholder's state, so the capture ends just before it.
				captures[activePlaceholder] = string(text[activeStart : i-1])
				haveCapture[activePlaceholder] = true
				activePlaceholder = -1
			}
			if v != -1 && activePlaceholder == -1 {
				activePlaceholder = v
				activeStart = i
			}
			cur2 = c.nodes[cur2].edge[symOf(int(b))]
		}
		// cur2 now equals cur from the walk above: the node reached after
		// the last input byte, before following the $ edge to term.

		if vFinal, ok := terminal.NodeToPlaceholder[cur2]; ok && vFinal == activePlaceholder && activePlaceholder != -1 {
			captures[activePlaceholder] = string(text[activeStart:])
			haveCapture[activePlaceholder] = true
		} else if activePlaceholder != -1 {
			captures[activePlaceholder] = string(text[activeStart : len(text)-1])
			haveCapture[activePlaceholder] = true
		}

		skip := false
		for i, had := range haveCapture {
			if !had || len(captures[i]) == 0 {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		named := make(map[string]string, len(terminal.Names))
		for i, name := range terminal.Names {
			named[name] = captures[i]
		}
		if visit(tg.Terminal, named) {
			return true
		}
	}
	return false
}
