// Package matrix assembles heterogeneous per-sample tallies into one
// samples × genes count table and persists it.
package matrix

import (
	"errors"

	"github.com/alfredbrown1/Onyx-Analysis/internal/counts"
)

// ErrNoSamples is returned when a matrix would have zero rows. Persisting a
// silent empty file would hide a configuration problem.
var ErrNoSamples = errors.New("no samples to assemble")

// Sample pairs a row label with its per-file tally.
type Sample struct {
	Label  string
	Counts *counts.Counts
}

// Matrix is the assembled count table. Row order is the order samples were
// given (discovery order, never sorted); column order is the order genes
// were first observed across samples in that row order.
type Matrix struct {
	Samples []string
	Genes   []string
	Cells   [][]int // Cells[row][col]
}

// Assemble unions the gene universe across samples and zero-fills absent
// cells. The fill happens here and only here: upstream tallies never hold
// zeros for unobserved genes.
func Assemble(samples []Sample) (*Matrix, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	col := make(map[string]int)
	var genes []string
	for _, s := range samples {
		for _, g := range s.Counts.Genes() {
			if _, ok := col[g]; !ok {
				col[g] = len(genes)
				genes = append(genes, g)
			}
		}
	}

	m := &Matrix{
		Samples: make([]string, len(samples)),
		Genes:   genes,
		Cells:   make([][]int, len(samples)),
	}
	for i, s := range samples {
		m.Samples[i] = s.Label
		row := make([]int, len(genes)) // explicit zero fill
		for _, g := range s.Counts.Genes() {
			row[col[g]] = s.Counts.Get(g)
		}
		m.Cells[i] = row
	}
	return m, nil
}

// At returns the count at (sample, gene), reporting whether both labels exist.
func (m *Matrix) At(sample, gene string) (int, bool) {
	r, c := -1, -1
	for i, s := range m.Samples {
		if s == sample {
			r = i
			break
		}
	}
	for j, g := range m.Genes {
		if g == gene {
			c = j
			break
		}
	}
	if r < 0 || c < 0 {
		return 0, false
	}
	return m.Cells[r][c], true
}
