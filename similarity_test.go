package hyperminhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSketchSimilarityDisjointSketches(t *testing.T) {
	a := NewSketch()
	b := NewSketch()

	for _, str := range sequentialStrings(0, 1000) {
		a.Add([]byte(str))
	}
	for _, str := range sequentialStrings(1000, 1000) {
		b.Add([]byte(str))
	}

	assert.Equal(t, 0.0, a.Similarity(b))
}

func TestSketchSimilarityIdenticalSketches(t *testing.T) {
	a := NewSketch()
	b := NewSketch()

	for _, str := range sequentialStrings(0, 5000) {
		a.Add([]byte(str))
		b.Add([]byte(str))
	}

	assert.InDelta(t, 1.0, a.Similarity(b), 0.1)
}

func TestSketchSimilarityRegisterCountMismatch(t *testing.T) {
	a := NewSketch()
	b := &Sketch{registers: make([]Register, m/2), hasher: defaultHasher}

	assert.Equal(t, 0.0, a.Similarity(b))
}

func TestSketchIntersectionRegisterCountMismatch(t *testing.T) {
	a := NewSketch()
	b := &Sketch{registers: make([]Register, m/2), hasher: defaultHasher}

	got, err := a.Intersection(b)
	assert.ErrorIs(t, err, ErrRegisterCountMismatch)
	assert.Equal(t, uint64(0), got)
}

// Mirrors original_source's test_no_intersection: two sketches built
// from disjoint streams report an estimated intersection of exactly 0.
// Run at the spec-mandated scale (1e6 items per side) rather than a
// smaller stand-in, since the chance-collision noise this guards
// against only becomes visible once m=16384 buckets are mostly full.
func TestSketchIntersectionDisjoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping disjoint intersection test in short mode")
	}

	const k = 1000000

	a := NewSketch()
	b := NewSketch()

	for _, str := range sequentialStrings(0, k) {
		a.Add([]byte(str))
	}
	for _, str := range sequentialStrings(k, k) {
		b.Add([]byte(str))
	}

	got, err := a.Intersection(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

// Mirrors original_source's test_intersection: two streams that share a
// fraction of their items, checked against a generous tolerance (the
// Python original allows up to 100% relative error on this estimate).
func TestSketchIntersectionPartialOverlap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping partial-overlap intersection test in short mode")
	}

	const k = 100000
	frac := 0.5

	a := NewSketch()
	b := NewSketch()

	for _, str := range sequentialStrings(0, k) {
		a.Add([]byte(str))
	}

	overlapStart := int(float64(k) * frac)
	for _, str := range sequentialStrings(overlapStart, 2*k-overlapStart) {
		b.Add([]byte(str))
	}

	exact := uint64(k - overlapStart)

	got, err := a.Intersection(b)
	require.NoError(t, err)

	ratio := percentError(got, exact)
	assert.LessOrEqualf(t, ratio, 100.0, "exact %d, got %d (%.2f%% error)", exact, got, ratio)
}
