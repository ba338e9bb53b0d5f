package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/shenwei356/xopen"
)

// Write persists the matrix as a rectangular table: header row of gene
// names, one row per sample with the label in the first column, integer
// cells. Format follows the destination extension: .csv/.tsv text, .gz
// (xopen) or .zst (zstd) compressed text, .xlsx workbook, "-" for stdout.
func Write(path string, m *Matrix) error {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return writeXLSX(path, m)
	case strings.HasSuffix(lower, ".zst"):
		return writeZst(path, m)
	default:
		return writeText(path, m)
	}
}

// Load reads a matrix previously persisted by Write. Row labels, column
// labels and integer cell values round-trip exactly.
func Load(path string) (*Matrix, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return loadXLSX(path)
	case strings.HasSuffix(lower, ".zst"):
		return loadZst(path)
	default:
		return loadText(path)
	}
}

func writeText(path string, m *Matrix) error {
	fh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeTable(fh, m, matrixComma(path)); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}

func writeZst(path string, m *Matrix) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(fh)
	if err != nil {
		_ = fh.Close()
		return err
	}
	if err := writeTable(enc, m, matrixComma(path)); err != nil {
		_ = enc.Close()
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func writeTable(w io.Writer, m *Matrix, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	header := make([]string, 0, len(m.Genes)+1)
	header = append(header, "sample")
	header = append(header, m.Genes...)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(m.Genes)+1)
	for i, label := range m.Samples {
		row[0] = label
		for j, v := range m.Cells[i] {
			row[j+1] = strconv.Itoa(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(path string, m *Matrix) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}
	if err := set(1, 1, "sample"); err != nil {
		return err
	}
	for j, g := range m.Genes {
		if err := set(j+2, 1, g); err != nil {
			return err
		}
	}
	for i, label := range m.Samples {
		if err := set(1, i+2, label); err != nil {
			return err
		}
		for j, v := range m.Cells[i] {
			if err := set(j+2, i+2, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func loadText(path string) (*Matrix, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = fh.Close() }()
	return readTable(fh, path, matrixComma(path))
}

func loadZst(path string) (*Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = fh.Close() }()
	dec, err := zstd.NewReader(fh)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return readTable(dec, path, matrixComma(path))
}

func readTable(r io.Reader, path string, comma rune) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromRows(path, rows)
}

func loadXLSX(path string) (*Matrix, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet %q: %w", path, sheet, err)
	}
	return fromRows(path, rows)
}

func fromRows(path string, rows [][]string) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty matrix file", path)
	}
	header := rows[0]
	if len(header) < 1 {
		return nil, fmt.Errorf("%s: missing label column", path)
	}
	m := &Matrix{Genes: append([]string(nil), header[1:]...)}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, i+2, len(row), len(header))
		}
		m.Samples = append(m.Samples, row[0])
		cells := make([]int, len(m.Genes))
		for j, s := range row[1:] {
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("%s: row %d col %d: bad count %q", path, i+2, j+2, s)
			}
			cells[j] = v
		}
		m.Cells = append(m.Cells, cells)
	}
	return m, nil
}

// matrixComma picks the delimiter from the destination name, ignoring
// compression suffixes. Tab for .tsv/.txt, comma otherwise.
func matrixComma(path string) rune {
	p := strings.ToLower(path)
	p = strings.TrimSuffix(p, ".gz")
	p = strings.TrimSuffix(p, ".zst")
	if strings.HasSuffix(p, ".tsv") || strings.HasSuffix(p, ".txt") {
		return '\t'
	}
	return ','
}
