// Package app wires the pipeline together for the CLI: reference
// preparation and the counting run. All state flows through explicit
// options so repeated invocations in one process cannot contaminate each
// other.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alfredbrown1/Onyx-Analysis/internal/barcode"
	"github.com/alfredbrown1/Onyx-Analysis/internal/fastq"
	"github.com/alfredbrown1/Onyx-Analysis/internal/index"
	"github.com/alfredbrown1/Onyx-Analysis/internal/match"
	"github.com/alfredbrown1/Onyx-Analysis/internal/matrix"
	"github.com/alfredbrown1/Onyx-Analysis/internal/pipeline"
)

// ReferenceOptions configures reference preparation.
type ReferenceOptions struct {
	Table   string // raw barcode design table
	Out     string // destination for the augmented reference
	Columns barcode.Options
}

// BuildReference loads the raw design table, computes reverse complements
// and persists the augmented reference table for reuse by counting runs.
func BuildReference(o ReferenceOptions) error {
	recs, err := barcode.LoadTable(o.Table, o.Columns)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("%s: no barcode records", o.Table)
	}
	if err := barcode.Augment(recs); err != nil {
		return err
	}
	return barcode.WriteTable(o.Out, recs)
}

// CountOptions configures a counting run.
type CountOptions struct {
	Reference string // augmented (or raw) reference table
	Columns   barcode.Options
	InputDirs []string
	Ext       string // read-file extension filter
	Labels    matrix.LabelOptions
	Out       string // count matrix destination
	Engine    string // "ac" or "naive"
	Threads   int
	OnError   string // "abort" or "skip"
	Quiet     bool
}

// Count runs the whole pipeline: build the index, classify and tally every
// discovered read file, assemble the matrix, persist it. Reference and
// index errors are fatal before any read file is opened: cheap to validate
// up front, expensive to discover mid-run.
func Count(ctx context.Context, o CountOptions, stderr io.Writer) error {
	recs, err := barcode.LoadTable(o.Reference, o.Columns)
	if err != nil {
		return err
	}
	// Tolerate references saved without the reverse-complement column.
	if err := barcode.Augment(recs); err != nil {
		return err
	}
	ix, err := index.Build(recs)
	if err != nil {
		return fmt.Errorf("%s: %w", o.Reference, err)
	}
	eng, err := match.New(ix, o.Engine)
	if err != nil {
		return err
	}
	policy, err := fastq.ParsePolicy(o.OnError)
	if err != nil {
		return err
	}

	files, err := matrix.Discover(o.InputDirs, o.Ext, o.Labels)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %q files found under %s", o.Ext, strings.Join(o.InputDirs, ", "))
	}

	samples, tot, err := pipeline.Run(ctx, pipeline.Config{
		Threads: o.Threads,
		Policy:  policy,
		Quiet:   o.Quiet,
	}, files, eng, stderr)
	if err != nil {
		return err
	}

	m, err := matrix.Assemble(samples)
	if err != nil {
		return err
	}
	if err := matrix.Write(o.Out, m); err != nil {
		return err
	}

	if !o.Quiet {
		fmt.Fprintf(stderr, "%d file(s): %d reads, %d assigned, %d unassigned, %d malformed",
			tot.Files, tot.Reads, tot.Assigned, tot.Reads-tot.Assigned, tot.Malformed)
		if tot.FilesFailed > 0 {
			fmt.Fprintf(stderr, ", %d file(s) skipped", tot.FilesFailed)
		}
		fmt.Fprintln(stderr)
	}
	return nil
}
