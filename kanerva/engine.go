// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package kanerva

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/blainsmith/seahash"
	"github.com/grailbio/base/log"
	"github.com/grailbio/kanervasdm/bitmatrix"
	"github.com/grailbio/kanervasdm/util"
	"github.com/pkg/errors"
)

// Config holds the parameters of a Kanerva Sparse Distributed Memory.
//
//   AddressDimension  the number of bits in an address vector (A)
//   MemoryDimension   the number of bits in a data vector (M)
//   NumLocations      the number of hard locations in the memory (N)
//   HammingThreshold  the activation radius: a hard location is in the
//                     active set for a query address iff its Hamming
//                     distance to that address is <= HammingThreshold (T)
//   Seed              optional PRNG seed for the hard-location table; if
//                     nil, New picks a fresh, non-reproducible seed
type Config struct {
	AddressDimension int
	MemoryDimension  int
	NumLocations     int
	HammingThreshold int
	Seed             *int64
}

// Validate reports whether c describes a constructible engine. Every
// dimension must be positive, the threshold must be non-negative, and the
// threshold may not exceed AddressDimension: a threshold past the largest
// possible Hamming distance would make every location permanently active,
// which is never useful and is rejected here rather than silently clamped.
func (c Config) Validate() error {
	if c.AddressDimension <= 0 {
		return invalidConfigf("AddressDimension must be positive, got %d", c.AddressDimension)
	}
	if c.MemoryDimension <= 0 {
		return invalidConfigf("MemoryDimension must be positive, got %d", c.MemoryDimension)
	}
	if c.NumLocations <= 0 {
		return invalidConfigf("NumLocations must be positive, got %d", c.NumLocations)
	}
	if c.HammingThreshold < 0 {
		return invalidConfigf("HammingThreshold must be non-negative, got %d", c.HammingThreshold)
	}
	if c.HammingThreshold > c.AddressDimension {
		return invalidConfigf("HammingThreshold (%d) must not exceed AddressDimension (%d)",
			c.HammingThreshold, c.AddressDimension)
	}
	return nil
}

// Engine is a Kanerva Sparse Distributed Memory: a fixed population of
// randomly placed hard address locations, each carrying a row of signed
// counters over the data dimension. Write superposes a pattern onto every
// hard location within HammingThreshold of the target address; Read
// majority-votes the counters of every hard location within
// HammingThreshold of the query address. An Engine is not safe for
// concurrent use; callers that need concurrent access must serialize it
// themselves.
type Engine struct {
	cfg         Config
	locations   bitmatrix.BitMatrix
	counters    util.Matrix
	memoryCount int
}

// New constructs an Engine from cfg. It returns an *InvalidConfigError if
// cfg fails Validate.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}

	log.Debug.Printf("kanerva: building hard-location table: N=%d A=%d seed=%d",
		cfg.NumLocations, cfg.AddressDimension, seed)

	e := &Engine{
		cfg:       cfg,
		locations: newHardLocationTable(cfg.NumLocations, cfg.AddressDimension, seed),
		counters:  util.NewMatrix(cfg.NumLocations, cfg.MemoryDimension),
	}
	return e, nil
}

// resolveSeed returns the caller-supplied seed reinterpreted as a uint64,
// or, if seed is nil, a fresh value drawn from crypto/rand. The spec leaves
// the caller free to request a non-reproducible table by omitting a seed;
// crypto/rand is the teacher repo's usual source for data that must not be
// predictable, and is a better fit here than math/rand's default seeding,
// which a caller could otherwise influence by program start time.
func resolveSeed(seed *int64) (uint64, error) {
	if seed != nil {
		return uint64(*seed), nil
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, errors.Wrap(err, "kanerva: generating random seed")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// AddressDimension returns A.
func (e *Engine) AddressDimension() int { return e.cfg.AddressDimension }

// MemoryDimension returns M.
func (e *Engine) MemoryDimension() int { return e.cfg.MemoryDimension }

// NumLocations returns N.
func (e *Engine) NumLocations() int { return e.cfg.NumLocations }

// HammingThreshold returns T.
func (e *Engine) HammingThreshold() int { return e.cfg.HammingThreshold }

// MemoryCount returns the number of successful Write calls since
// construction or the last EraseMemory.
func (e *Engine) MemoryCount() int { return e.memoryCount }

// Write superposes data onto every hard location whose address is within
// HammingThreshold of address. address must have length AddressDimension
// and data must have length MemoryDimension; both must hold only 0/1
// values. Write returns an *InvalidArgumentError and leaves the engine
// unmodified if either precondition fails.
func (e *Engine) Write(address, data []int) error {
	if err := validateBits("address", address, e.cfg.AddressDimension); err != nil {
		return err
	}
	if err := validateBits("data", data, e.cfg.MemoryDimension); err != nil {
		return err
	}

	active := e.activeSet(e.locations.PackBits(address))
	for _, row := range active {
		e.counters.AccumulateRow(row, data)
	}
	e.memoryCount++
	return nil
}

// Read returns the majority-vote reconstruction of every hard location
// within HammingThreshold of address: for each output bit, a strictly
// positive counter sum votes 1, a strictly negative sum votes 0, and a tie
// (including an empty active set, whose sums are all zero) votes 0.
// address must have length AddressDimension and hold only 0/1 values.
func (e *Engine) Read(address []int) ([]int, error) {
	if err := validateBits("address", address, e.cfg.AddressDimension); err != nil {
		return nil, err
	}

	active := e.activeSet(e.locations.PackBits(address))
	sums := e.counters.ColumnSums(active)
	out := make([]int, len(sums))
	for i, s := range sums {
		if s > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

// EraseMemory zeros every counter and resets MemoryCount to 0. The hard
// locations themselves are untouched: erasing forgets what was written,
// not where the engine's address population happens to sit.
func (e *Engine) EraseMemory() {
	e.counters.Reset()
	e.memoryCount = 0
}

// activeSet returns the indices of every hard location within
// HammingThreshold of query, packed via bitmatrix.PackBits.
func (e *Engine) activeSet(query []uint64) []int {
	var active []int
	for i := 0; i < e.cfg.NumLocations; i++ {
		if e.locations.HammingDistance(i, query) <= e.cfg.HammingThreshold {
			active = append(active, i)
		}
	}
	return active
}

func validateBits(name string, vals []int, want int) error {
	if len(vals) != want {
		return invalidArgumentf("%s has length %d, want %d", name, len(vals), want)
	}
	for i, v := range vals {
		if v != 0 && v != 1 {
			return invalidArgumentf("%s[%d] = %d, must be 0 or 1", name, i, v)
		}
	}
	return nil
}

// fingerprint returns a checksum of the engine's counter matrix, suitable
// for asserting that two engines built from the same seed and fed the same
// write history hold identical state without comparing counters directly.
// It carries no information about the hard-location table itself.
func (e *Engine) fingerprint() uint64 {
	return e.counters.Checksum(seahash.New())
}

// String returns a human-readable summary of the engine's configuration and
// write history.
func (e *Engine) String() string {
	return fmt.Sprintf("kanerva.Engine{A=%d, M=%d, N=%d, T=%d, memoryCount=%d}",
		e.cfg.AddressDimension, e.cfg.MemoryDimension, e.cfg.NumLocations,
		e.cfg.HammingThreshold, e.memoryCount)
}
