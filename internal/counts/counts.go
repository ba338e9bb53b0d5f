// Package counts tallies per-read assignments into one sample's gene→count
// table.
package counts

import "github.com/alfredbrown1/Onyx-Analysis/internal/classify"

// Counts is one sample's tally. Targets never matched are absent, not zero;
// zero-filling is the matrix assembler's job. Gene order is the order genes
// were first observed, which keeps downstream matrix columns deterministic.
type Counts struct {
	n     map[string]int
	order []string
}

// New returns an empty tally.
func New() *Counts { return &Counts{n: make(map[string]int)} }

// Add records one occurrence of target. Accumulation is commutative: any
// permutation of the same additions yields the same Counts.
func (c *Counts) Add(target string) {
	if _, ok := c.n[target]; !ok {
		c.order = append(c.order, target)
	}
	c.n[target]++
}

// Get returns the tallied count for target, zero if never observed.
func (c *Counts) Get(target string) int { return c.n[target] }

// Genes returns the observed targets in first-seen order.
func (c *Counts) Genes() []string { return c.order }

// Len reports the number of distinct targets observed.
func (c *Counts) Len() int { return len(c.order) }

// Tally folds a sequence of assignments into a fresh Counts. Empty input
// yields an empty tally, not a failure.
func Tally(assignments []classify.Assignment) *Counts {
	c := New()
	for _, a := range assignments {
		c.Add(a.Target)
	}
	return c
}
