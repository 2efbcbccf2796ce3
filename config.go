package hyperminhash

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
)

// secureRandomInt returns a cryptographically random uint64, used to
// seed the sampling hash when the caller does not supply one.
func secureRandomInt() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Config represents the configuration for a SamplingSpaceSavingSets sketch
type Config struct {
	// MaxNumCounters is the maximum number of counters to keep
	MaxNumCounters int
	// Seeds are used by the sampling strategy that decides which label
	// gets a counter once MaxNumCounters is reached
	Seeds []uint64
	// SketchOptions configures each per-label HyperMinHash sketch (e.g.
	// WithHasher); nil uses the package default for all of them
	SketchOptions []Option
}

// NewConfig creates a new configuration for a SamplingSpaceSavingSets sketch
func NewConfig(
	maxNumCounters int,
	sketchOptions []Option,
	seeds []uint64,
) (*Config, error) {
	if maxNumCounters <= 0 {
		return nil, errors.New("max number of counters must be greater than zero")
	}

	// If no seeds are provided, generate random ones
	if seeds == nil {
		seeds = make([]uint64, 4)
		for i := range seeds {
			seeds[i] = secureRandomInt()
		}
	}

	return &Config{
		MaxNumCounters: maxNumCounters,
		Seeds:          seeds,
		SketchOptions:  sketchOptions,
	}, nil
}
