package match

import "github.com/alfredbrown1/Onyx-Analysis/internal/index"

/*
Aho–Corasick automaton over all index keys.

- build: trie edges for every key, then BFS to set failure links and
  propagate outputs.
- Match: one scan of the read collects every key occurrence; the winner is
  the key with the lowest ordinal in index-construction order, which
  reproduces the naive scanner's first-key-in-index-order result exactly.
*/

// node is one state in the automaton.
type node struct {
	next [256]int // 0 => absent (state 0 is the root)
	fail int
	out  []int // key ordinals that end at this state
}

// Automaton is immutable after construction; Match keeps all scan state on
// the stack, so one instance serves any number of goroutines.
type Automaton struct {
	nodes   []node
	targets []string
}

// NewAutomaton compiles the index keys into a single automaton.
func NewAutomaton(ix *index.Index) *Automaton {
	entries := ix.Entries()
	a := &Automaton{
		nodes:   make([]node, 1), // state 0 = root
		targets: make([]string, len(entries)),
	}

	// 1) Trie edges
	for i, e := range entries {
		a.targets[i] = e.Target
		cur := 0
		for k := 0; k < len(e.Key); k++ {
			b := e.Key[k]
			if a.nodes[cur].next[b] == 0 {
				a.nodes = append(a.nodes, node{})
				a.nodes[cur].next[b] = len(a.nodes) - 1
			}
			cur = a.nodes[cur].next[b]
		}
		a.nodes[cur].out = append(a.nodes[cur].out, i)
	}

	// 2) BFS to set fail links and propagate outputs
	queue := make([]int, 0, len(a.nodes))
	for c := 0; c < 256; c++ {
		if child := a.nodes[0].next[c]; child != 0 {
			a.nodes[child].fail = 0
			queue = append(queue, child)
		}
	}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for c := 0; c < 256; c++ {
			s := a.nodes[r].next[c]
			if s == 0 {
				continue
			}
			queue = append(queue, s)
			f := a.nodes[r].fail
			for f > 0 && a.nodes[f].next[c] == 0 {
				f = a.nodes[f].fail
			}
			if a.nodes[f].next[c] != 0 {
				f = a.nodes[f].next[c]
			}
			a.nodes[s].fail = f
			if len(a.nodes[f].out) > 0 {
				a.nodes[s].out = append(a.nodes[s].out, a.nodes[f].out...)
			}
		}
	}
	return a
}

// Match runs the automaton over seq once and folds occurrences to the lowest
// key ordinal. Ordinal 0 cannot be beaten, so the scan stops early there.
func (a *Automaton) Match(seq []byte) (string, bool) {
	best := -1
	state := 0
	for i := 0; i < len(seq); i++ {
		b := seq[i]
		for state > 0 && a.nodes[state].next[b] == 0 {
			state = a.nodes[state].fail
		}
		if next := a.nodes[state].next[b]; next != 0 {
			state = next
		}
		for _, id := range a.nodes[state].out {
			if best == -1 || id < best {
				best = id
				if best == 0 {
					return a.targets[0], true
				}
			}
		}
	}
	if best < 0 {
		return "", false
	}
	return a.targets[best], true
}
