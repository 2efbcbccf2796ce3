package main

import (
	"fmt"

	"github.com/sawmills/hyperminhash"
)

func main() {
	// Create a new SamplingSpaceSavingSets configuration: track distinct
	// items per label, backed by a HyperMinHash sketch per label
	config, err := hyperminhash.NewConfig(10, nil, nil)
	if err != nil {
		panic(err)
	}

	// Create a new SamplingSpaceSavingSets sketch
	sketch := hyperminhash.NewHyperMinHashSamplingSpaceSavingSets[int, int](config)

	// Insert items into the sketch
	for label := 10; label <= 100; label += 10 {
		for item := 0; item < label; item++ {
			sketch.Insert(label, item)
		}
	}

	// Get the top 5 labels
	top := sketch.Top(5)
	fmt.Println("Top 5 labels:")
	for _, entry := range top {
		fmt.Printf("Label: %d, Cardinality: %d\n", entry.Label, entry.Count)
	}

	// Create another sketch with different data
	sketch2 := hyperminhash.NewHyperMinHashSamplingSpaceSavingSets[int, int](config)
	for label := 50; label <= 150; label += 10 {
		for item := 100; item < label+100; item++ {
			sketch2.Insert(label, item)
		}
	}

	// Merge the sketches
	err = sketch.Merge(sketch2)
	if err != nil {
		panic(err)
	}

	// Get the top 5 labels after merging
	top = sketch.Top(5)
	fmt.Println("\nTop 5 labels after merging:")
	for _, entry := range top {
		fmt.Printf("Label: %d, Cardinality: %d\n", entry.Label, entry.Count)
	}

	// Check the cardinality of a specific label
	label := 100
	cardinality := sketch.Cardinality(label)
	fmt.Printf("\nCardinality of label %d: %d\n", label, cardinality)

	// Demonstrate the core sketch directly: Jaccard similarity and
	// intersection size between two HyperMinHash sketches
	a := hyperminhash.NewSketch()
	b := hyperminhash.NewSketch()
	for i := 0; i < 1000; i++ {
		a.Add([]byte(fmt.Sprintf("item-%d", i)))
	}
	for i := 500; i < 1500; i++ {
		b.Add([]byte(fmt.Sprintf("item-%d", i)))
	}

	intersection, err := a.Intersection(b)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nEstimated intersection of two overlapping streams: %d\n", intersection)
}
