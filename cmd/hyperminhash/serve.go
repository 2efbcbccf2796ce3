package main

import (
	"bufio"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sawmills/hyperminhash"
	"github.com/sawmills/hyperminhash/internal/metrics"
)

func serveCmd() *cobra.Command {
	var addr, name string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build a sketch from stdin while exposing it on a Prometheus /metrics endpoint",
		Long: `Starts an HTTP server exposing Prometheus metrics, then reads
newline-delimited items from stdin, adding each one to a sketch and
updating the cardinality gauge as it goes. Useful for watching a
sketch converge against a live or replayed stream.

Example:
  tail -f access.log | hyperminhash serve --addr :9100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, name)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9100", "address to expose /metrics on")
	cmd.Flags().StringVar(&name, "name", "serve", "sketch name reported in metrics")

	return cmd
}

func runServe(addr, name string) error {
	server := metrics.NewServer(addr)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	log.Printf("metrics listening on %s", addr)

	sketch := hyperminhash.NewSketch()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sketch.Add(scanner.Bytes())
		metrics.RecordAdd(name, sketch.Cardinality())
	}

	return scanner.Err()
}
