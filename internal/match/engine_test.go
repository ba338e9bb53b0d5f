package match

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alfredbrown1/Onyx-Analysis/internal/barcode"
	"github.com/alfredbrown1/Onyx-Analysis/internal/index"
)

func buildIndex(t *testing.T, recs []barcode.Record) *index.Index {
	t.Helper()
	if err := barcode.Augment(recs); err != nil {
		t.Fatal(err)
	}
	ix, err := index.Build(recs)
	if err != nil {
		t.Fatal(err)
	}
	return ix
}

func engines(ix *index.Index) map[string]Engine {
	return map[string]Engine{
		"naive": NewNaive(ix),
		"ac":    NewAutomaton(ix),
	}
}

// A read containing two known barcodes is assigned by index order, not by
// which barcode occurs first positionally.
func TestMatchIndexOrderWins(t *testing.T) {
	ix := buildIndex(t, []barcode.Record{
		{Target: "Gene1", Seq: "ACGTA"},
		{Target: "Gene2", Seq: "GGCCA"},
	})
	// Gene2's barcode occurs first in the read, Gene1's later.
	seq := []byte("TTGGCCATTACGTATT")
	for name, eng := range engines(ix) {
		got, ok := eng.Match(seq)
		if !ok || got != "Gene1" {
			t.Errorf("%s: Match = %q,%v, want Gene1 (index order beats position)", name, got, ok)
		}
	}
}

func TestMatchRevCompKey(t *testing.T) {
	ix := buildIndex(t, []barcode.Record{
		{Target: "GeneB", Seq: "TTTTTCCCCC"},
	})
	seq := []byte("AAGGGGGAAAAACC") // contains rc(TTTTTCCCCC) = GGGGGAAAAA
	for name, eng := range engines(ix) {
		got, ok := eng.Match(seq)
		if !ok || got != "GeneB" {
			t.Errorf("%s: Match = %q,%v, want GeneB via reverse complement", name, got, ok)
		}
	}
}

func TestMatchNone(t *testing.T) {
	ix := buildIndex(t, []barcode.Record{
		{Target: "GeneA", Seq: "ACGTACGTA"},
	})
	for name, eng := range engines(ix) {
		if got, ok := eng.Match([]byte("CCCCCCCCCCCC")); ok {
			t.Errorf("%s: unexpected match %q", name, got)
		}
		if _, ok := eng.Match(nil); ok {
			t.Errorf("%s: match on empty sequence", name)
		}
	}
}

func TestNewVariant(t *testing.T) {
	ix := buildIndex(t, []barcode.Record{{Target: "g", Seq: "ACGT"}})
	for _, v := range []string{"", "ac", "naive"} {
		if _, err := New(ix, v); err != nil {
			t.Errorf("New(%q): %v", v, err)
		}
	}
	if _, err := New(ix, "bogus"); err == nil {
		t.Error("New(bogus): expected error")
	}
}

// The automaton must reproduce the naive scanner exactly, including reads
// holding several barcodes and reads holding none.
func TestEnginesAgreeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bases := []byte("ACGT")
	randSeq := func(n int) []byte {
		s := make([]byte, n)
		for i := range s {
			s[i] = bases[rng.Intn(len(bases))]
		}
		return s
	}

	var recs []barcode.Record
	for i := 0; i < 40; i++ {
		recs = append(recs, barcode.Record{
			Target: fmt.Sprintf("g%02d", i),
			Seq:    string(randSeq(6 + rng.Intn(6))),
		})
	}
	ix := buildIndex(t, recs)
	naive := NewNaive(ix)
	auto := NewAutomaton(ix)

	entries := ix.Entries()
	for trial := 0; trial < 1000; trial++ {
		seq := randSeq(40 + rng.Intn(60))
		// Plant up to two known keys at random offsets in a third of trials.
		for p := 0; p < trial%3; p++ {
			k := entries[rng.Intn(len(entries))].Key
			if len(k) <= len(seq) {
				copy(seq[rng.Intn(len(seq)-len(k)+1):], k)
			}
		}
		nt, nok := naive.Match(seq)
		at, aok := auto.Match(seq)
		if nok != aok || nt != at {
			t.Fatalf("trial %d: naive=%q,%v ac=%q,%v seq=%s", trial, nt, nok, at, aok, seq)
		}
	}
}
