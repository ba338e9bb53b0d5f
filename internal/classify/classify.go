// Package classify assigns each read of one sample file to at most one
// target by scanning its sequence for known barcode substrings.
package classify

import (
	"context"

	"github.com/alfredbrown1/Onyx-Analysis/internal/fastq"
	"github.com/alfredbrown1/Onyx-Analysis/internal/match"
)

// Assignment ties one read to the target whose barcode it contains.
type Assignment struct {
	ReadID string
	Target string
}

// Stats summarises one file's classification. Reads-Assigned is the
// no-match count, a normal outcome rather than an error.
type Stats struct {
	Reads     int
	Assigned  int
	Malformed int
}

// Classify scans one read file against the engine and emits at most one
// assignment per read, lazily, in file order. Reads containing no known
// barcode yield no assignment. The result is re-derivable by re-reading
// the same file.
func Classify(ctx context.Context, path string, eng match.Engine, policy fastq.Policy, visit func(Assignment) error) (Stats, error) {
	var st Stats
	fst, err := fastq.Scan(ctx, path, policy, func(r fastq.Record) error {
		target, ok := eng.Match(r.Seq)
		if !ok {
			return nil
		}
		st.Assigned++
		return visit(Assignment{ReadID: r.ID, Target: target})
	})
	st.Reads = fst.Records
	st.Malformed = fst.Malformed
	return st, err
}
