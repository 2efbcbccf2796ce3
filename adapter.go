package hyperminhash

import (
	"errors"
	"fmt"
)

// GenericSketch adapts the concrete, byte-oriented Sketch to the
// CardinalitySketch[T] interface (sketch_traits.go) for any comparable
// T, the same way the teacher repo's HyperLogLog[T] did. An item is
// turned into a byte string with fmt's "%v" verb before being handed to
// the underlying Sketch's Add — the same approach the teacher used to
// hash an arbitrary comparable T with hash/fnv.
type GenericSketch[T comparable] struct {
	sketch *Sketch
	opts   []Option
}

// NewGenericSketch creates a GenericSketch backed by a fresh, empty
// Sketch built with opts.
func NewGenericSketch[T comparable](opts ...Option) *GenericSketch[T] {
	return &GenericSketch[T]{
		sketch: NewSketch(opts...),
		opts:   opts,
	}
}

// Insert adds item to the underlying sketch.
func (g *GenericSketch[T]) Insert(item T) {
	g.sketch.Add([]byte(fmt.Sprintf("%v", item)))
}

// Merge combines this sketch with another GenericSketch[T], replacing
// this sketch's state with the union (the underlying Sketch.Merge
// returns a new value, so Merge here reassigns g.sketch to it rather
// than mutating in place).
func (g *GenericSketch[T]) Merge(other CardinalitySketch[T]) error {
	otherGeneric, ok := other.(*GenericSketch[T])
	if !ok {
		return errors.New("can only merge with another GenericSketch")
	}

	merged, err := g.sketch.Merge(otherGeneric.sketch)
	if err != nil {
		return err
	}

	g.sketch = merged
	return nil
}

// Clear resets the sketch to its initial, all-zero state.
func (g *GenericSketch[T]) Clear() {
	g.sketch = NewSketch(g.opts...)
}

// Cardinality returns the estimated cardinality of the set.
func (g *GenericSketch[T]) Cardinality() uint64 {
	return g.sketch.Cardinality()
}

// Similarity estimates the Jaccard coefficient against another
// CardinalitySketch[T], satisfying SimilaritySketch[T]. Callers that
// pass anything other than a *GenericSketch[T] get 0 back, the same
// "maximally dissimilar, never panic" contract Sketch.Similarity uses
// for a register-count mismatch.
func (g *GenericSketch[T]) Similarity(other CardinalitySketch[T]) float64 {
	otherGeneric, ok := other.(*GenericSketch[T])
	if !ok {
		return 0
	}
	return g.sketch.Similarity(otherGeneric.sketch)
}

// Intersection estimates the size of the set intersection against
// another CardinalitySketch[T] backed by a *GenericSketch[T].
func (g *GenericSketch[T]) Intersection(other CardinalitySketch[T]) (uint64, error) {
	otherGeneric, ok := other.(*GenericSketch[T])
	if !ok {
		return 0, errors.New("can only estimate intersection with another GenericSketch")
	}
	return g.sketch.Intersection(otherGeneric.sketch)
}
