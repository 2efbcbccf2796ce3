package hyperminhash

import "github.com/cespare/xxhash/v2"

// Hasher maps an arbitrary byte string to a uniformly distributed
// 64-bit value. It is a capability of a Sketch rather than something
// hard-coded into its public contract: callers that need a specific hash family for
// reproducibility across languages can supply their own via WithHasher.
type Hasher interface {
	Sum64(data []byte) uint64
}

// xxHasher is the default Hasher. xxhash is a widely used, well-audited
// non-cryptographic 64-bit hash with strong avalanche behavior, which is
// all §4.5 asks for.
type xxHasher struct{}

func (xxHasher) Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

var defaultHasher Hasher = xxHasher{}
