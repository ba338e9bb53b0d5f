package barcode

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/shenwei356/xopen"
)

// Options locates the relevant columns of a barcode design table.
type Options struct {
	TargetColumn  string // header name of the target/gene column
	BarcodeColumn string // header name of the barcode sequence column
	RevCompColumn string // header name of the reverse-complement column, if present
	SkipRows      int    // rows to drop before the header row
}

// DefaultOptions matches the column names written by WriteTable.
func DefaultOptions() Options {
	return Options{
		TargetColumn:  "target",
		BarcodeColumn: "barcode",
		RevCompColumn: "reverse_complement",
	}
}

// LoadTable reads a barcode design table. CSV and TSV (optionally
// gzip-compressed, or "-" for stdin) are chosen by file extension; .xlsx
// workbooks are read from their active sheet. Columns are located by header
// name, case-insensitively. The reverse-complement column is optional; when
// present its values are validated like barcodes.
func LoadTable(path string, opt Options) ([]Record, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		rows, err = readXLSXRows(path)
	} else {
		rows, err = readTextRows(path)
	}
	if err != nil {
		return nil, err
	}
	return parseRows(path, rows, opt)
}

func readTextRows(path string) ([][]string, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = fh.Close() }()

	r := csv.NewReader(fh)
	r.Comma = tableComma(path)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet %q: %w", path, sheet, err)
	}
	return rows, nil
}

// tableComma picks the delimiter from the file name, ignoring compression
// suffixes. Tab for .tsv/.txt, comma otherwise.
func tableComma(path string) rune {
	p := strings.ToLower(path)
	p = strings.TrimSuffix(p, ".gz")
	p = strings.TrimSuffix(p, ".zst")
	if strings.HasSuffix(p, ".tsv") || strings.HasSuffix(p, ".txt") {
		return '\t'
	}
	return ','
}

func parseRows(path string, rows [][]string, opt Options) ([]Record, error) {
	if opt.SkipRows > 0 {
		if opt.SkipRows >= len(rows) {
			return nil, fmt.Errorf("%s: --skip-rows %d leaves no header row", path, opt.SkipRows)
		}
		rows = rows[opt.SkipRows:]
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	targetIdx := findColumn(header, opt.TargetColumn)
	seqIdx := findColumn(header, opt.BarcodeColumn)
	rcIdx := -1
	if opt.RevCompColumn != "" {
		rcIdx = findColumn(header, opt.RevCompColumn)
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("%s: column %q not found in header", path, opt.TargetColumn)
	}
	if seqIdx < 0 {
		return nil, fmt.Errorf("%s: column %q not found in header", path, opt.BarcodeColumn)
	}

	var recs []Record
	for i, row := range rows[1:] {
		ln := opt.SkipRows + i + 2 // 1-based line of this data row
		if blankRow(row) {
			continue
		}
		if targetIdx >= len(row) || seqIdx >= len(row) {
			return nil, fmt.Errorf("%s:%d: too few columns", path, ln)
		}
		rec := Record{
			Target: strings.TrimSpace(row[targetIdx]),
			Seq:    strings.ToUpper(strings.TrimSpace(row[seqIdx])),
		}
		if rec.Target == "" {
			return nil, fmt.Errorf("%s:%d: empty target name", path, ln)
		}
		if rec.Seq == "" {
			return nil, fmt.Errorf("%s:%d: empty barcode sequence", path, ln)
		}
		if err := ValidateSeq(rec.Seq); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
		}
		if rcIdx >= 0 && rcIdx < len(row) {
			rec.RevComp = strings.ToUpper(strings.TrimSpace(row[rcIdx]))
			if err := ValidateSeq(rec.RevComp); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
