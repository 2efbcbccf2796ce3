package hyperminhash

import (
	"errors"
	"math/bits"
)

// p is the log2 of the number of registers. It is a compile-time
// constant, as recommended by §7: sketches never disagree on p, so the
// only merge-time error this package defines (ErrRegisterCountMismatch)
// can only be reached by constructing a Sketch outside NewSketch.
const p = 14

// m is the number of registers in a sketch, 2^p.
const m = 1 << p

// lzInputBits is the width, in bits, of the slice used to compute the
// leading-zero run (§4.3 step 2): everything left over once the bucket
// index has taken the top p bits.
const lzInputBits = 64 - p

// lzInputMask isolates the low lzInputBits bits of a hash.
const lzInputMask = 1<<lzInputBits - 1

// ErrRegisterCountMismatch is returned by Merge when two sketches do
// not share the same register count. With p fixed at compile time this
// cannot happen through the public API; it exists so a corrupted or
// hand-built Sketch fails loudly instead of silently.
var ErrRegisterCountMismatch = errors.New("hyperminhash: register count mismatch")

// Sketch is a fixed-memory HyperMinHash cardinality sketch: m = 16384
// packed Registers plus the Hasher used to turn payloads into the
// 64-bit values those registers are built from.
type Sketch struct {
	registers []Register
	hasher    Hasher
}

// Option configures a Sketch constructed by NewSketch.
type Option func(*Sketch)

// WithHasher overrides the default xxhash-backed Hasher. Use this to
// plug in a different 64-bit hash family (§9's "hash abstraction" design
// note) — for example to match the hash used by a sketch built in
// another language, since the spec treats hashing as an external
// collaborator rather than part of the sketch's own contract.
func WithHasher(h Hasher) Option {
	return func(s *Sketch) {
		s.hasher = h
	}
}

// NewSketch creates an empty sketch: m registers, all zero.
func NewSketch(opts ...Option) *Sketch {
	s := &Sketch{
		registers: make([]Register, m),
		hasher:    defaultHasher,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add inserts payload into the sketch. Any byte string, including the
// empty one, is a legal input. Add is monotonic: the affected register
// never decreases, and inserting the same payload twice leaves the
// sketch unchanged after the first call.
func (s *Sketch) Add(payload []byte) {
	h := s.hasher.Sum64(payload)
	s.insertHash(h)
}

// insertHash implements §4.3 step 2-4: split the hash into a bucket
// index, a leading-zero run, and a signature, then keep the maximum of
// the candidate and the current register under packed-value comparison.
func (s *Sketch) insertHash(h uint64) {
	bucket := h >> lzInputBits

	lzInput := h & lzInputMask
	lzCount := uint8(bits.LeadingZeros64(lzInput)) - p
	if lzCount > maxLZ {
		lzCount = maxLZ
	}
	lzCount++

	sig := uint16(h & sigMask)

	candidate := pack(lzCount, sig)
	if candidate > s.registers[bucket] {
		s.registers[bucket] = candidate
	}
}

// Cardinality returns the estimated number of distinct payloads Add has
// ever been called with. There is no large-range correction (§4.3): the
// 64-bit hash makes that branch unreachable for feasible cardinalities.
func (s *Sketch) Cardinality() uint64 {
	sum, zeros := regSumAndZeros(s.registers)
	return estimateCardinality(sum, zeros)
}

// Merge returns a new sketch whose registers are the bucket-wise
// maximum of s and other, leaving both operands untouched. The result
// is equivalent to inserting the union of the two multisets into an
// empty sketch.
func (s *Sketch) Merge(other *Sketch) (*Sketch, error) {
	if len(s.registers) != len(other.registers) {
		return nil, ErrRegisterCountMismatch
	}

	merged := NewSketch(WithHasher(s.hasher))
	for i := range s.registers {
		r := s.registers[i]
		if other.registers[i] > r {
			r = other.registers[i]
		}
		merged.registers[i] = r
	}

	return merged, nil
}
