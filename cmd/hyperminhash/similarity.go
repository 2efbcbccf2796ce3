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

func similarityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similarity <fileA> <fileB>",
		Short: "Estimate the Jaccard similarity and intersection size of two streams",
		Long: `Builds one sketch per file and reports the estimated Jaccard
similarity and the estimated intersection size between them, without
ever holding either file's distinct item set in memory.

Example:
  hyperminhash similarity yesterday.log today.log`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimilarity(args[0], args[1], cmd.OutOrStdout())
		},
	}

	return cmd
}

func runSimilarity(pathA, pathB string, out io.Writer) error {
	a, err := sketchFromFile(pathA)
	if err != nil {
		return err
	}

	b, err := sketchFromFile(pathB)
	if err != nil {
		return err
	}

	similarity := a.Similarity(b)

	intersection, err := a.Intersection(b)
	if err != nil {
		return fmt.Errorf("failed to estimate intersection: %w", err)
	}

	merged, err := a.Merge(b)
	if err != nil {
		return fmt.Errorf("failed to estimate union: %w", err)
	}
	metrics.RecordMerge("similarity", merged.Cardinality())

	fmt.Fprintf(out, "similarity=%.4f intersection=%d union=%d\n", similarity, intersection, merged.Cardinality())
	return nil
}

func sketchFromFile(path string) (*hyperminhash.Sketch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sketch := hyperminhash.NewSketch()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sketch.Add(scanner.Bytes())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return sketch, nil
}
