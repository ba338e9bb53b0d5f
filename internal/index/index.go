// Package index builds the merged barcode lookup: every known nucleotide
// string (a barcode or its reverse complement) mapped to the target it
// identifies.
package index

import (
	"errors"
	"fmt"

	"github.com/alfredbrown1/Onyx-Analysis/internal/barcode"
)

// ErrEmptyReference is returned when an index would contain no keys.
// An index that matches nothing is a configuration error, not a usable state.
var ErrEmptyReference = errors.New("barcode reference contains no records")

// Entry is one key of the merged lookup, in construction order.
type Entry struct {
	Key    string
	Target string
}

// Index is immutable after Build and safe for concurrent readers.
//
// Entry order is the construction order: all forward keys in reference row
// order, then all reverse-complement keys in row order. A key inserted twice
// keeps its original position but the later target wins, so a
// reverse-complement key colliding with an earlier forward key overwrites
// that forward mapping in place.
type Index struct {
	entries []Entry
	slot    map[string]int
}

// Build constructs the index from an augmented reference. The two-phase
// insertion (forward mappings first, reverse-complement mappings second) is
// the contract assignment results depend on; keep it explicit.
func Build(recs []barcode.Record) (*Index, error) {
	if len(recs) == 0 {
		return nil, ErrEmptyReference
	}
	ix := &Index{
		entries: make([]Entry, 0, 2*len(recs)),
		slot:    make(map[string]int, 2*len(recs)),
	}
	for i, r := range recs {
		if r.Seq == "" {
			return nil, fmt.Errorf("record %d (target %s): empty barcode", i+1, r.Target)
		}
		ix.put(r.Seq, r.Target)
	}
	for i, r := range recs {
		if r.RevComp == "" {
			return nil, fmt.Errorf("record %d (target %s): missing reverse complement; augment the reference first", i+1, r.Target)
		}
		ix.put(r.RevComp, r.Target)
	}
	return ix, nil
}

func (ix *Index) put(key, target string) {
	if i, ok := ix.slot[key]; ok {
		ix.entries[i].Target = target
		return
	}
	ix.slot[key] = len(ix.entries)
	ix.entries = append(ix.entries, Entry{Key: key, Target: target})
}

// Entries returns the keys in construction order. Callers must not mutate
// the returned slice.
func (ix *Index) Entries() []Entry { return ix.entries }

// Len reports the number of distinct keys.
func (ix *Index) Len() int { return len(ix.entries) }

// Lookup returns the target for an exact key.
func (ix *Index) Lookup(key string) (string, bool) {
	i, ok := ix.slot[key]
	if !ok {
		return "", false
	}
	return ix.entries[i].Target, true
}
