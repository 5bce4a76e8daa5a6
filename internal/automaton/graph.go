package automaton

// tag is a terminal tag: a (terminal-index, placeholder-name) pair attached
// to an NFA node. placeholder is "" when the terminal merely passes through
// the node outside of any of its placeholders.
type tag struct {
	terminal    int
	placeholder string
}

// nfaNode is a single node of the nondeterministic match graph built by the
// pattern compiler. Unlike the teacher's nfa.State, a node has no kind
// field: every node in this graph plays the same role (a literal-byte
// fan-out plus an optional terminal fan-out), because placeholders and the
// wildcard are expressed directly as self-loops rather than as Split/Capture
// states threaded through epsilon transitions.
type nfaNode struct {
	id    int32
	tags  []tag
	edges [256][]int32 // successor node ids per literal byte value
	term  []int32      // successor node ids via the $ (end-of-input) sentinel
}

// Graph is the nondeterministic match graph shared by every registered
// pattern. Node 0 is the root; it carries no edges of its own; its only role
// is the conceptual source of the per-terminal '^' edges recorded in starts.
type Graph struct {
	nodes  []*nfaNode
	starts []int32 // starts[i] is the entry node for terminal i
}

// NewGraph returns an empty graph containing only the root node.
func NewGraph() *Graph {
	return &Graph{nodes: []*nfaNode{{id: 0}}}
}

func (g *Graph) newNode() *nfaNode {
	n := &nfaNode{id: int32(len(g.nodes))}
	g.nodes = append(g.nodes, n)
	return n
}

// NodeCount returns the number of nodes in the graph, including the root.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Node returns the node with the given id.
func (g *Graph) Node(id int32) *nfaNode {
	return g.nodes[id]
}

// Starts returns the entry node id for each registered terminal, in
// terminal-index order.
func (g *Graph) Starts() []int32 {
	return g.starts
}

// tagNode attaches (terminal, placeholder) to n, upserting per the rule in
// §4.1: a revisit for the same terminal may promote an empty placeholder to
// a named one, but two distinct non-empty names for the same terminal at the
// same node is a construction bug, not user input, so it panics.
func tagNode(n *nfaNode, terminal int, placeholder string) {
	for i := range n.tags {
		if n.tags[i].terminal != terminal {
			continue
		}
		switch {
		case n.tags[i].placeholder == placeholder:
			return
		case n.tags[i].placeholder == "":
			n.tags[i].placeholder = placeholder
			return
		case placeholder == "":
			return
		default:
			panic(&conflictError{
				node:        n.id,
				terminalA:   terminal,
				terminalB:   terminal,
				placeholder: placeholder,
			})
		}
	}
	n.tags = append(n.tags, tag{terminal: terminal, placeholder: placeholder})
}

// AddPattern extends the graph with a path uniquely attributable to the
// given terminal index, per §4.1. It returns the ordered list of placeholder
// names declared by pattern, or a *PatternError if pattern is malformed.
//
// Callers must invoke AddPattern with terminal indices 0, 1, 2, ... in
// order; this mirrors the teacher's pattern of appending to a parallel slice
// indexed by the caller's own counter rather than accepting an arbitrary id.
func (g *Graph) AddPattern(pattern string, terminal int) ([]string, error) {
	segments, names, err := ParsePattern(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if terminal != len(g.starts) {
		panic("automaton: AddPattern called out of terminal-index order")
	}

	s := g.newNode()
	g.starts = append(g.starts, s.id)
	tagNode(s, terminal, "")

	cur := s
	activePlaceholder := ""
	for _, seg := range segments {
		switch seg.kind {
		case segLiteral:
			n := g.newNode()
			cur.edges[seg.b] = append(cur.edges[seg.b], n.id)
			tagNode(n, terminal, "")
			cur = n
			activePlaceholder = ""
		case segPlaceholder:
			for v := 0; v < 256; v++ {
				if byte(v) == '/' {
					continue
				}
				cur.edges[v] = append(cur.edges[v], cur.id)
			}
			tagNode(cur, terminal, seg.name)
			activePlaceholder = seg.name
		case segWildcard:
			for v := 0; v < 256; v++ {
				cur.edges[v] = append(cur.edges[v], cur.id)
			}
			tagNode(cur, terminal, "")
			activePlaceholder = ""
		}
	}
	_ = activePlaceholder

	t := g.newNode()
	cur.term = append(cur.term, t.id)
	tagNode(t, terminal, "")

	return names, nil
}
