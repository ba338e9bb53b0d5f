// Package pipeline fans read files through the match engine and collects
// one tally per file. Files are the unit of work: tallies are independent,
// the engine is read-only, and the merge is a single barrier after all
// workers finish, so parallelism never changes results.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/alfredbrown1/Onyx-Analysis/internal/classify"
	"github.com/alfredbrown1/Onyx-Analysis/internal/cmdutil"
	"github.com/alfredbrown1/Onyx-Analysis/internal/counts"
	"github.com/alfredbrown1/Onyx-Analysis/internal/fastq"
	"github.com/alfredbrown1/Onyx-Analysis/internal/match"
	"github.com/alfredbrown1/Onyx-Analysis/internal/matrix"
)

// Config controls the per-file fan-out.
type Config struct {
	Threads int          // worker goroutines; <=0 means 1 (the sequential batch model)
	Policy  fastq.Policy // malformed-record handling, uniform across all files
	Quiet   bool
}

// Totals aggregates per-file statistics for the run summary.
type Totals struct {
	Files       int // files tallied into the matrix
	FilesFailed int // files dropped under the skip policy
	Reads       int
	Assigned    int
	Malformed   int
}

type fileResult struct {
	count *counts.Counts
	stats classify.Stats
	err   error
}

// Run classifies every file and returns per-sample tallies in the discovery
// order of files, regardless of which worker finished first. Under the
// abort policy the first file error cancels the remaining work and is
// returned; under skip a failed file is dropped with a warning and the
// other files' tallies are unaffected.
func Run(ctx context.Context, cfg Config, files []matrix.File, eng match.Engine, warnw io.Writer) ([]matrix.Sample, Totals, error) {
	var tot Totals
	if len(files) == 0 {
		return nil, tot, nil
	}

	thr := cfg.Threads
	if thr < 1 {
		thr = 1
	}
	if thr > len(files) {
		thr = len(files)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, len(files))
	results := make([]fileResult, len(files))

	var wg sync.WaitGroup
	wg.Add(thr)
	for w := 0; w < thr; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := runCtx.Err(); err != nil {
					results[i] = fileResult{err: err}
					continue
				}
				c := counts.New()
				st, err := classify.Classify(runCtx, files[i].Path, eng, cfg.Policy, func(a classify.Assignment) error {
					c.Add(a.Target)
					return nil
				})
				results[i] = fileResult{count: c, stats: st, err: err}
				if err != nil && cfg.Policy == fastq.Abort {
					cancel()
				}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Merge barrier: re-impose discovery order and fold statistics.
	var samples []matrix.Sample
	var firstErr error
	for i, r := range results {
		if r.err != nil {
			if cfg.Policy == fastq.Abort {
				// Prefer the causing failure over cancellations it induced.
				if firstErr == nil || errors.Is(firstErr, context.Canceled) && !errors.Is(r.err, context.Canceled) {
					firstErr = fmt.Errorf("%s: %w", files[i].Path, r.err)
				}
				continue
			}
			tot.FilesFailed++
			cmdutil.Warnf(warnw, cfg.Quiet, "skipping %s: %v", files[i].Path, r.err)
			continue
		}
		if r.stats.Malformed > 0 {
			cmdutil.Warnf(warnw, cfg.Quiet, "%s: %d malformed record(s); rest of file skipped", files[i].Path, r.stats.Malformed)
		}
		tot.Files++
		tot.Reads += r.stats.Reads
		tot.Assigned += r.stats.Assigned
		tot.Malformed += r.stats.Malformed
		samples = append(samples, matrix.Sample{Label: files[i].Label, Counts: r.count})
	}

	// Cancellation from the caller wins over the error it induced.
	if err := ctx.Err(); err != nil {
		return nil, tot, err
	}
	if firstErr != nil {
		return nil, tot, firstErr
	}
	return samples, tot, nil
}
