package barcode

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/shenwei356/xopen"
)

// WriteTable persists an augmented reference table for reuse by index
// construction. The format follows the destination extension: CSV/TSV
// (gzip when the name ends in .gz, "-" for stdout) or .xlsx.
func WriteTable(path string, recs []Record) error {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return writeXLSXTable(path, recs)
	}
	fh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(fh)
	w.Comma = tableComma(path)
	if err := w.Write([]string{"target", "barcode", "reverse_complement"}); err != nil {
		_ = fh.Close()
		return err
	}
	for _, r := range recs {
		if err := w.Write([]string{r.Target, r.Seq, r.RevComp}); err != nil {
			_ = fh.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}

func writeXLSXTable(path string, recs []Record) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	header := []string{"target", "barcode", "reverse_complement"}
	for c, name := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for i, r := range recs {
		for c, v := range []string{r.Target, r.Seq, r.RevComp} {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
