// Package match holds the multi-pattern scanners that decide which barcode,
// if any, a read contains. Two interchangeable implementations exist: a
// naive reference scanner and an Aho–Corasick automaton. Both resolve a read
// containing several known barcodes the same way: the key earliest in
// index-construction order wins, regardless of where in the read it occurs.
package match

import (
	"bytes"
	"fmt"

	"github.com/alfredbrown1/Onyx-Analysis/internal/index"
)

// Engine assigns a read sequence to a target by exact substring containment.
// Implementations must be safe for concurrent use.
type Engine interface {
	// Match returns the target of the matching index key that comes first
	// in index-construction order, or ok=false when no key occurs in seq.
	Match(seq []byte) (target string, ok bool)
}

// New returns the engine variant selected by name: "ac" (default) for the
// Aho–Corasick automaton, "naive" for the reference scanner.
func New(ix *index.Index, variant string) (Engine, error) {
	switch variant {
	case "", "ac":
		return NewAutomaton(ix), nil
	case "naive":
		return NewNaive(ix), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want ac or naive)", variant)
	}
}

// Naive tests every key in index order with a substring search:
// O(keys × len(seq)) per read. It is the semantic reference the automaton
// is validated against.
type Naive struct {
	keys    [][]byte
	targets []string
}

// NewNaive builds the reference scanner over all index keys.
func NewNaive(ix *index.Index) *Naive {
	entries := ix.Entries()
	n := &Naive{
		keys:    make([][]byte, len(entries)),
		targets: make([]string, len(entries)),
	}
	for i, e := range entries {
		n.keys[i] = []byte(e.Key)
		n.targets[i] = e.Target
	}
	return n
}

// Match scans keys in index order and stops at the first one contained in seq.
func (n *Naive) Match(seq []byte) (string, bool) {
	for i, k := range n.keys {
		if bytes.Contains(seq, k) {
			return n.targets[i], true
		}
	}
	return "", false
}
