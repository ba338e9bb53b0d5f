package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alfredbrown1/Onyx-Analysis/internal/barcode"
	"github.com/alfredbrown1/Onyx-Analysis/internal/fastq"
	"github.com/alfredbrown1/Onyx-Analysis/internal/index"
	"github.com/alfredbrown1/Onyx-Analysis/internal/match"
	"github.com/alfredbrown1/Onyx-Analysis/internal/matrix"
)

// Three reads per sample: one with GeneA's barcode, one with GeneB's
// reverse complement, one with neither.
var sampleReads = [][2]string{
	{"read1", "GGATACGTACGTATTGG"},
	{"read2", "AAGGGGGAAAAACC"},
	{"read3", "CACACACACACACACA"},
}

func writeFastq(t *testing.T, dir, name string, reads [][2]string) {
	t.Helper()
	var b strings.Builder
	for _, r := range reads {
		b.WriteString("@" + r[0] + "\n" + r[1] + "\n+\n" + strings.Repeat("I", len(r[1])) + "\n")
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testEngine(t *testing.T) match.Engine {
	t.Helper()
	recs := []barcode.Record{
		{Target: "GeneA", Seq: "ACGTACGTA"},
		{Target: "GeneB", Seq: "TTTTTCCCCC"},
	}
	if err := barcode.Augment(recs); err != nil {
		t.Fatal(err)
	}
	ix, err := index.Build(recs)
	if err != nil {
		t.Fatal(err)
	}
	eng, err := match.New(ix, "ac")
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestRunTwoSamples(t *testing.T) {
	dir := t.TempDir()
	writeFastq(t, dir, "s1.fastq", sampleReads)
	writeFastq(t, dir, "s2.fastq", sampleReads)
	files, err := matrix.Discover([]string{dir}, ".fastq", matrix.LabelOptions{})
	if err != nil {
		t.Fatal(err)
	}

	for _, threads := range []int{1, 4} {
		samples, tot, err := Run(context.Background(), Config{Threads: threads}, files, testEngine(t), io.Discard)
		if err != nil {
			t.Fatalf("threads=%d: Run: %v", threads, err)
		}
		if tot.Files != 2 || tot.Reads != 6 || tot.Assigned != 4 || tot.Malformed != 0 {
			t.Fatalf("threads=%d: totals = %+v", threads, tot)
		}
		if len(samples) != 2 || samples[0].Label != "s1" || samples[1].Label != "s2" {
			t.Fatalf("threads=%d: sample order broken: %v, %v", threads, samples[0].Label, samples[1].Label)
		}
		for _, s := range samples {
			if s.Counts.Get("GeneA") != 1 || s.Counts.Get("GeneB") != 1 || s.Counts.Len() != 2 {
				t.Errorf("threads=%d: %s counts wrong: GeneA=%d GeneB=%d",
					threads, s.Label, s.Counts.Get("GeneA"), s.Counts.Get("GeneB"))
			}
		}

		m, err := matrix.Assemble(samples)
		if err != nil {
			t.Fatalf("Assemble: %v", err)
		}
		if len(m.Samples) != 2 || len(m.Genes) != 2 {
			t.Fatalf("matrix shape %dx%d, want 2x2", len(m.Samples), len(m.Genes))
		}
	}
}

func TestRunAbortOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFastq(t, dir, "s1.fastq", sampleReads)
	if err := os.WriteFile(filepath.Join(dir, "s2.fastq"), []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	files, err := matrix.Discover([]string{dir}, ".fastq", matrix.LabelOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := Run(context.Background(), Config{Policy: fastq.Abort}, files, testEngine(t), io.Discard); err == nil {
		t.Fatal("expected error under abort policy")
	}
}

func TestRunSkipIsolatesBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFastq(t, dir, "s1.fastq", sampleReads)
	if err := os.WriteFile(filepath.Join(dir, "s2.fastq"), []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	files, err := matrix.Discover([]string{dir}, ".fastq", matrix.LabelOptions{})
	if err != nil {
		t.Fatal(err)
	}

	var warnings strings.Builder
	samples, tot, err := Run(context.Background(), Config{Policy: fastq.Skip}, files, testEngine(t), &warnings)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tot.Malformed == 0 {
		t.Errorf("malformed records not counted: %+v", tot)
	}
	if warnings.Len() == 0 {
		t.Error("skip must be observable: no warning written")
	}
	// The good file's tally is untouched by its neighbour's failure.
	if samples[0].Label != "s1" || samples[0].Counts.Get("GeneA") != 1 {
		t.Errorf("good sample corrupted: %v", samples[0].Label)
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFastq(t, dir, "s1.fastq", sampleReads)
	files, err := matrix.Discover([]string{dir}, ".fastq", matrix.LabelOptions{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Run(ctx, Config{}, files, testEngine(t), io.Discard); err == nil {
		t.Fatal("expected context error")
	}
}
