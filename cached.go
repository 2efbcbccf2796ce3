package hyperminhash

// CachedSketch wraps a CardinalitySketch (typically a *GenericSketch[T]
// backed by HyperMinHash) and caches the cardinality value
type CachedSketch[T comparable] struct {
	sketch      CardinalitySketch[T]
	cardinality uint64
}

// NewCachedSketch creates a new cached sketch
func NewCachedSketch[T comparable](sketch CardinalitySketch[T]) *CachedSketch[T] {
	return &CachedSketch[T]{
		sketch:      sketch,
		cardinality: 0,
	}
}

// Insert adds an item to the sketch and updates the cached cardinality
func (c *CachedSketch[T]) Insert(item T) {
	c.sketch.Insert(item)
	c.cardinality = c.sketch.Cardinality()
}

// Merge combines this sketch with another sketch of the same type
func (c *CachedSketch[T]) Merge(other CardinalitySketch[T]) error {
	otherCached, ok := other.(*CachedSketch[T])
	if !ok {
		return c.sketch.Merge(other)
	}

	err := c.sketch.Merge(otherCached.sketch)
	if err != nil {
		return err
	}

	c.cardinality = c.sketch.Cardinality()
	return nil
}

// Clear resets the sketch to its initial state
func (c *CachedSketch[T]) Clear() {
	c.sketch.Clear()
	c.cardinality = 0
}

// Cardinality returns the cached cardinality value
func (c *CachedSketch[T]) Cardinality() uint64 {
	return c.cardinality
}

// Similarity estimates the Jaccard coefficient between the sets this
// CachedSketch and other wrap, when both wrap a SimilaritySketch[T]
// (true for every CachedSketch[T] SamplingSpaceSavingSets constructs,
// since it always wraps a GenericSketch[T]). Unlike Cardinality this is
// never cached: SamplingSpaceSavingSets only calls it while looking for
// a redundant pair of labels during eviction (ssss.go), a handful of
// comparisons per Insert, not a per-item hot path.
func (c *CachedSketch[T]) Similarity(other *CachedSketch[T]) float64 {
	sim, ok := c.sketch.(SimilaritySketch[T])
	if !ok {
		return 0
	}
	return sim.Similarity(other.sketch)
}
