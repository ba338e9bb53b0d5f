package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/alfredbrown1/Onyx-Analysis/internal/app"
	"github.com/alfredbrown1/Onyx-Analysis/internal/barcode"
	"github.com/alfredbrown1/Onyx-Analysis/internal/matrix"
)

var (
	countReference  string
	countOut        string
	countExt        string
	countStrip      int
	countPattern    string
	countEngine     string
	countThreads    int
	countOnError    string
	countQuiet      bool
	countTargetCol  string
	countBarcodeCol string
	countRevCompCol string
	countSkipRows   int
)

var countCmd = &cobra.Command{
	Use:   "count --reference reference.csv --out counts.csv DIR...",
	Short: "Count barcode occurrences per sample into a gene count matrix",
	Long: `Scans every read file (one sample per file) found under the given
directories for exact barcode substrings, forward or reverse
complement, and writes the sample × gene count matrix.

When a read contains more than one known barcode, the barcode earliest
in reference order wins (forward entries first, then reverse
complements), not the one occurring first in the read. Reads with no
barcode count toward no gene.

Rows follow discovery order: directories as given, sorted file names
within each. Sample labels default to the file name without its read
extension; --strip removes a fixed number of trailing characters
instead, and --label-pattern extracts the first capture group.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		labels := matrix.LabelOptions{StripLen: countStrip}
		if countPattern != "" {
			re, err := regexp.Compile(countPattern)
			if err != nil {
				return fmt.Errorf("bad --label-pattern: %w", err)
			}
			if re.NumSubexp() < 1 {
				return fmt.Errorf("--label-pattern needs one capture group")
			}
			labels.Pattern = re
		}
		cols := barcode.DefaultOptions()
		cols.TargetColumn = countTargetCol
		cols.BarcodeColumn = countBarcodeCol
		cols.RevCompColumn = countRevCompCol
		cols.SkipRows = countSkipRows
		return app.Count(cmd.Context(), app.CountOptions{
			Reference: countReference,
			Columns:   cols,
			InputDirs: args,
			Ext:       countExt,
			Labels:    labels,
			Out:       countOut,
			Engine:    countEngine,
			Threads:   countThreads,
			OnError:   countOnError,
			Quiet:     countQuiet,
		}, cmd.ErrOrStderr())
	},
}

func init() {
	d := barcode.DefaultOptions()
	countCmd.Flags().StringVar(&countReference, "reference", "", "augmented reference table from \"onyx reference\" (required)")
	countCmd.Flags().StringVar(&countOut, "out", "", "count matrix destination: .csv/.tsv[.gz|.zst] or .xlsx (required)")
	countCmd.Flags().StringVar(&countExt, "ext", ".fastq", "read-file extension filter")
	countCmd.Flags().IntVar(&countStrip, "strip", 0, "trailing characters to strip from file names for sample labels")
	countCmd.Flags().StringVar(&countPattern, "label-pattern", "", "regexp with one capture group extracting the sample label")
	countCmd.Flags().StringVar(&countEngine, "engine", "ac", "match engine: ac | naive")
	countCmd.Flags().IntVar(&countThreads, "threads", 1, "files processed in parallel")
	countCmd.Flags().StringVar(&countOnError, "on-error", "abort", "malformed read file handling: abort | skip")
	countCmd.Flags().BoolVar(&countQuiet, "quiet", false, "suppress warnings and the run summary")
	countCmd.Flags().StringVar(&countTargetCol, "target-col", d.TargetColumn, "header name of the target/gene column")
	countCmd.Flags().StringVar(&countBarcodeCol, "barcode-col", d.BarcodeColumn, "header name of the barcode sequence column")
	countCmd.Flags().StringVar(&countRevCompCol, "revcomp-col", d.RevCompColumn, "header name of the reverse-complement column")
	countCmd.Flags().IntVar(&countSkipRows, "skip-rows", 0, "rows to drop before the header row")
	_ = countCmd.MarkFlagRequired("reference")
	_ = countCmd.MarkFlagRequired("out")
}
