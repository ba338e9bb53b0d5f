package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredbrown1/Onyx-Analysis/internal/app"
	"github.com/alfredbrown1/Onyx-Analysis/internal/barcode"
)

var (
	refTable      string
	refOut        string
	refTargetCol  string
	refBarcodeCol string
	refSkipRows   int
)

var referenceCmd = &cobra.Command{
	Use:   "reference --table design.csv --out reference.csv",
	Short: "Augment a barcode design table with reverse complements",
	Long: `Reads the barcode design table (CSV, TSV or XLSX; columns located by
header name), computes the reverse complement of every barcode, and
persists the augmented reference table for use by "onyx count".

Barcodes must consist only of A, C, G and T; any other character is a
fatal error and no partial reference is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cols := barcode.DefaultOptions()
		cols.TargetColumn = refTargetCol
		cols.BarcodeColumn = refBarcodeCol
		cols.SkipRows = refSkipRows
		return app.BuildReference(app.ReferenceOptions{
			Table:   refTable,
			Out:     refOut,
			Columns: cols,
		})
	},
}

func init() {
	d := barcode.DefaultOptions()
	referenceCmd.Flags().StringVar(&refTable, "table", "", "barcode design table (required)")
	referenceCmd.Flags().StringVar(&refOut, "out", "", "augmented reference destination (required)")
	referenceCmd.Flags().StringVar(&refTargetCol, "target-col", d.TargetColumn, "header name of the target/gene column")
	referenceCmd.Flags().StringVar(&refBarcodeCol, "barcode-col", d.BarcodeColumn, "header name of the barcode sequence column")
	referenceCmd.Flags().IntVar(&refSkipRows, "skip-rows", 0, "rows to drop before the header row")
	_ = referenceCmd.MarkFlagRequired("table")
	_ = referenceCmd.MarkFlagRequired("out")
}
