package matrix

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// File is one discovered sample input.
type File struct {
	Path  string
	Label string
}

// LabelOptions derives a sample label from a read file name. The original
// naming scheme stripped a fixed-length suffix; both that and a regular
// expression transform are supported so the convention stays configurable.
type LabelOptions struct {
	Pattern  *regexp.Regexp // if set and it matches, the first capture group wins
	StripLen int            // else: fixed number of trailing characters removed
}

// Label applies the configured transform to a file name.
// Fallback order: regex capture, fixed-length strip, recognized-extension trim.
func (o LabelOptions) Label(name string) string {
	base := filepath.Base(name)
	if o.Pattern != nil {
		if m := o.Pattern.FindStringSubmatch(base); len(m) > 1 {
			return m[1]
		}
	}
	if o.StripLen > 0 && o.StripLen < len(base) {
		return base[:len(base)-o.StripLen]
	}
	return trimReadExt(base)
}

func trimReadExt(name string) string {
	name = strings.TrimSuffix(name, ".gz")
	for _, ext := range []string{".fastq", ".fq", ".fasta", ".fa", ".txt"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// Discover lists read files under each directory: directories in the order
// given, entries in sorted-name order within each (the os.ReadDir listing
// order). That traversal order is an observable contract: matrix rows
// follow it. ext filters by file-name suffix; empty keeps every regular file.
func Discover(dirs []string, ext string, opt LabelOptions) ([]File, error) {
	var out []File
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if ext != "" && !strings.HasSuffix(name, ext) {
				continue
			}
			out = append(out, File{
				Path:  filepath.Join(dir, name),
				Label: opt.Label(name),
			})
		}
	}
	return out, nil
}
