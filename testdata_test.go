package hyperminhash

import (
	"fmt"
	"math/rand"
)

// randomStrings returns n distinct pseudo-random 32-byte strings, seeded
// for reproducibility across test runs (the Go analogue of
// original_source/hyperminhash_test.py's rnd_str, which drew from
// numpy.random.choice over ascii_letters).
func randomStrings(n int, seed int64) []string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	rng := rand.New(rand.NewSource(seed))

	out := make([]string, n)
	for i := range out {
		buf := make([]byte, 32)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		out[i] = string(buf)
	}
	return out
}

// sequentialStrings returns the decimal string form of [start, start+n),
// mirroring original_source's str(i) fixtures used by test_intersection
// and test_no_intersection.
func sequentialStrings(start, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d", start+i)
	}
	return out
}
