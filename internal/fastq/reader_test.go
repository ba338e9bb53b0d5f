package fastq

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fastqContent(reads [][2]string) string {
	var b strings.Builder
	for _, r := range reads {
		b.WriteString("@" + r[0] + "\n")
		b.WriteString(r[1] + "\n")
		b.WriteString("+\n")
		b.WriteString(strings.Repeat("I", len(r[1])) + "\n")
	}
	return b.String()
}

func writeFastq(t *testing.T, dir, name string, reads [][2]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := []byte(fastqContent(reads))
	if strings.HasSuffix(name, ".gz") {
		fh, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		zw := gzip.NewWriter(fh)
		if _, err := zw.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		if err := fh.Close(); err != nil {
			t.Fatal(err)
		}
		return path
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanPlain(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "s.fastq", [][2]string{
		{"read1", "ACGTACGTACGT"},
		{"read2", "TTTTGGGG"},
	})
	var ids []string
	var seqs []string
	st, err := Scan(context.Background(), path, Abort, func(r Record) error {
		ids = append(ids, r.ID)
		seqs = append(seqs, string(r.Seq)) // copy: the buffer is reused
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if st.Records != 2 || st.Malformed != 0 {
		t.Fatalf("stats = %+v", st)
	}
	if ids[0] != "read1" || ids[1] != "read2" {
		t.Errorf("ids = %v", ids)
	}
	if seqs[0] != "ACGTACGTACGT" || seqs[1] != "TTTTGGGG" {
		t.Errorf("seqs = %v", seqs)
	}
}

func TestScanGzip(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "s.fastq.gz", [][2]string{
		{"read1", "ACGT"},
	})
	st, err := Scan(context.Background(), path, Abort, func(Record) error { return nil })
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if st.Records != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestScanMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.fastq")
	if err := os.WriteFile(path, []byte("this is not sequence data\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Scan(context.Background(), path, Abort, func(Record) error { return nil }); err == nil {
		t.Error("Abort: expected parse error")
	}

	st, err := Scan(context.Background(), path, Skip, func(Record) error { return nil })
	if err != nil {
		t.Errorf("Skip: unexpected error %v", err)
	}
	if st.Malformed == 0 {
		t.Errorf("Skip: malformed count not recorded, stats = %+v", st)
	}
}

func TestScanCancel(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "s.fastq", [][2]string{{"r", "ACGT"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, path, Abort, func(Record) error { return nil }); err == nil {
		t.Error("expected context error")
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": Abort, "abort": Abort, "skip": Skip} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v,%v, want %v", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("ignore"); err == nil {
		t.Error("ParsePolicy(ignore): expected error")
	}
}
