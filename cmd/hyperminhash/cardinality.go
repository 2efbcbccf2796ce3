package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sawmills/hyperminhash"
	"github.com/sawmills/hyperminhash/internal/metrics"
)

func cardinalityCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "cardinality [file]",
		Short: "Estimate the number of distinct lines in a stream",
		Long: `Reads newline-delimited items from the given file (or stdin if no
file is given), adds each one to a fresh sketch, and prints the
estimated cardinality.

Examples:
  hyperminhash cardinality access.log
  cat access.log | hyperminhash cardinality`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardinality(args, name, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&name, "name", "cardinality", "sketch name reported in metrics")

	return cmd
}

func runCardinality(args []string, name string, out io.Writer) error {
	reader, closeFn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeFn()

	sketch := hyperminhash.NewSketch()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines uint64
	for scanner.Scan() {
		sketch.Add(scanner.Bytes())
		lines++

		if verbose && lines%100000 == 0 {
			fmt.Fprintf(os.Stderr, "processed %d lines, estimate %d\n", lines, sketch.Cardinality())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	estimate := sketch.Cardinality()
	metrics.RecordAdd(name, estimate)

	fmt.Fprintf(out, "%d\n", estimate)
	return nil
}

func openInput(args []string) (io.Reader, func() error, error) {
	if len(args) == 0 {
		return os.Stdin, func() error { return nil }, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	return f, f.Close, nil
}
