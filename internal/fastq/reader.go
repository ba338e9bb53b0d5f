// Package fastq streams sequencing reads from FASTQ (or FASTA) files,
// transparently handling gzip, and makes the malformed-record policy
// explicit rather than implicit.
package fastq

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
)

// Policy selects what happens when a record cannot be parsed.
type Policy int

const (
	// Abort stops the scan at the first malformed record and reports it.
	Abort Policy = iota
	// Skip abandons the rest of the malformed file: records parsed so far
	// are kept, the failure is counted in Stats.Malformed, and the scan
	// returns without error so other files can proceed.
	Skip
)

// ParsePolicy maps the CLI spelling to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	default:
		return Abort, fmt.Errorf("unknown error policy %q (want abort or skip)", s)
	}
}

// Record is one sequencing read: identifier plus nucleotide sequence.
type Record struct {
	ID  string
	Seq []byte
}

// Stats reports what a scan saw.
type Stats struct {
	Records   int // records parsed and visited
	Malformed int // parse failures (non-zero only under Skip)
}

// Scan streams records from path in file order, calling visit for each.
// The visit callback must not retain Record.Seq: the underlying buffer is
// reused between reads. Open failures are always errors regardless of
// policy. Cancellation is checked between records.
func Scan(ctx context.Context, path string, policy Policy, visit func(Record) error) (Stats, error) {
	var st Stats
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return st, fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		rec, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return st, nil
			}
			if policy == Skip {
				st.Malformed++
				return st, nil
			}
			return st, fmt.Errorf("parse %s: %w", path, err)
		}
		st.Records++
		if err := visit(Record{ID: string(rec.ID), Seq: rec.Seq.Seq}); err != nil {
			return st, err
		}
	}
}
