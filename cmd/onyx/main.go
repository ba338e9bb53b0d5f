package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredbrown1/Onyx-Analysis/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "onyx",
	Short: "Barcode counting for pooled-library sequencing experiments",
	Long: `Onyx assigns each sequencing read to a gene by the synthetic barcode
embedded in the read and aggregates per-sample assignments into a
sample × gene count matrix for downstream analysis.

A run has two steps: "onyx reference" augments the barcode design table
with reverse complements, and "onyx count" scans one FASTQ file per
sample against that reference and writes the count matrix.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "onyx version %s\n", version.Version)
	},
}
