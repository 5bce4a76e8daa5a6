package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/routex/internal/sparse"
)

// detNode is a single state of the determinized graph: a dense outgoing-edge
// table (index 0 is the $ sentinel, index b+1 is literal byte b) plus the
// union of terminal tags carried by every NFA node in the state's origin
// set.
type detNode struct {
	edge [257]int32 // -1 means NONE
	tags []tag
}

// detGraph is the output of subset construction: a deterministic graph over
// the same 257-symbol alphabet as the NFA, with node 0 as the unique start
// state.
type detGraph struct {
	nodes []*detNode
}

// symOf maps a primitive NFA edge to its index in the 257-slot table: the
// $ sentinel at 0, literal byte b at b+1.
func symOf(b int) int { return b + 1 }

const symEnd = 0

// determinize performs subset construction over g, per §4.2. Rather than
// mutating g's node array in place (the spec's own description of the
// procedure), it builds an explicit map from canonical NFA-node-sets to
// dense state ids; this produces an automaton extensionally identical to
// the in-place version; the choice of representation is invisible to
// compaction and matching, which only ever see the resulting edge tables
// and tag lists; the explicit-stack worklist and sparse-set-based successor
// gathering are grounded on the teacher's Builder.buildState/stackPush.
func determinize(g *Graph) *detGraph {
	discovered := make(map[string]int32)
	var dg detGraph

	gather := sparse.NewSparseSet(uint32(g.NodeCount()))

	canon := func(ids []int32) ([]int32, string) {
		gather.Clear()
		for _, id := range ids {
			gather.Insert(uint32(id))
		}
		out := append([]int32(nil), ids...)
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		dedup := out[:0]
		var last int32 = -1
		for _, id := range out {
			if id == last && len(dedup) > 0 {
				continue
			}
			dedup = append(dedup, id)
			last = id
		}
		var sb strings.Builder
		for _, id := range dedup {
			sb.WriteString(strconv.Itoa(int(id)))
			sb.WriteByte(',')
		}
		return dedup, sb.String()
	}

	// idFor returns the dense state id for the set named by key, allocating
	// a fresh state (and pushing its origin onto the worklist) if needed.
	type pending struct {
		id     int32
		origin []int32
	}
	var stack []pending

	idFor := func(origin []int32, key string) int32 {
		if id, ok := discovered[key]; ok {
			return id
		}
		id := int32(len(dg.nodes))
		n := &detNode{}
		for i := range n.edge {
			n.edge[i] = -1
		}
		seen := make(map[tag]bool)
		chosen := make(map[int]string) // terminal -> placeholder already recorded for this state
		for _, nid := range origin {
			for _, t := range g.Node(nid).tags {
				if seen[t] {
					continue
				}
				if prev, ok := chosen[t.terminal]; ok {
					switch {
					case prev == t.placeholder:
						// duplicate, already counted via seen above
					case prev == "":
						// promote empty to named: find and update the existing entry
						for i := range n.tags {
							if n.tags[i].terminal == t.terminal && n.tags[i].placeholder == "" {
								n.tags[i].placeholder = t.placeholder
								chosen[t.terminal] = t.placeholder
								seen[t] = true
								break
							}
						}
						continue
					case t.placeholder == "":
						continue
					default:
						panic(&conflictError{
							node:        id,
							terminalA:   t.terminal,
							terminalB:   t.terminal,
							placeholder: t.placeholder,
						})
					}
				}
				seen[t] = true
				chosen[t.terminal] = t.placeholder
				n.tags = append(n.tags, t)
			}
		}
		sort.Slice(n.tags, func(i, j int) bool {
			if n.tags[i].terminal != n.tags[j].terminal {
				return n.tags[i].terminal < n.tags[j].terminal
			}
			return n.tags[i].placeholder < n.tags[j].placeholder
		})
		dg.nodes = append(dg.nodes, n)
		discovered[key] = id
		stack = append(stack, pending{id: id, origin: origin})
		return id
	}

	startOrigin, startKey := canon(g.Starts())
	idFor(startOrigin, startKey)

	succScratch := sparse.NewSparseSet(uint32(g.NodeCount()))

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := dg.nodes[top.id]

		for sym := 0; sym < 257; sym++ {
			succScratch.Clear()
			var succ []int32
			for _, nid := range top.origin {
				var targets []int32
				if sym == symEnd {
					targets = g.Node(nid).term
				} else {
					targets = g.Node(nid).edges[sym-1]
				}
				for _, t := range targets {
					if succScratch.Contains(uint32(t)) {
						continue
					}
					succScratch.Insert(uint32(t))
					succ = append(succ, t)
				}
			}
			if len(succ) == 0 {
				continue
			}
			origin, key := canon(succ)
			n.edge[sym] = idFor(origin, key)
		}
	}

	return &dg
}
