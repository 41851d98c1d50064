package kanerva

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
)

// bitSource yields a reproducible stream of uniform pseudorandom 64-bit
// words keyed by a seed. Two bitSources built with the same seed produce
// byte-identical streams; this is the only place randomness enters the
// engine, and it is consumed exclusively while building the hard-location
// table (see newHardLocationTable). Nothing on the read/write path touches
// it, so those paths stay pure functions of already-stored state.
//
// The counter-mode construction — hash an incrementing counter, keyed by
// seed, with a general-purpose seeded hash — follows the same shape as
// hashKmer in the teacher repo's fusion package, which derives a
// deterministic per-kmer value from farm.Hash64WithSeed.
type bitSource struct {
	seed    uint64
	counter uint64
}

func newBitSource(seed uint64) *bitSource {
	return &bitSource{seed: seed}
}

// nextWord returns the next 64 pseudorandom bits in the stream.
func (s *bitSource) nextWord() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], s.counter)
	s.counter++
	return farm.Hash64WithSeed(buf[:], s.seed)
}
