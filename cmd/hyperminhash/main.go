// Package main provides the hyperminhash CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool //nolint:gochecknoglobals // CLI flag variable

func main() {
	rootCmd := &cobra.Command{
		Use:   "hyperminhash",
		Short: "Build and query HyperMinHash cardinality sketches",
		Long: `hyperminhash builds HyperMinHash sketches from newline-delimited
item streams and reports cardinality, similarity, and intersection
estimates without ever materializing the full set of distinct items.`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print per-checkpoint progress to stderr")

	rootCmd.AddCommand(cardinalityCmd())
	rootCmd.AddCommand(similarityCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
