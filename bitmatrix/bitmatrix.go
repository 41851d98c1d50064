// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bitmatrix provides a word-packed, fixed-size N x A bit matrix used
// to store the Kanerva SDM's hard-location address table: one A-bit address
// per row, N rows total, frozen once filled.
//
// The storage discipline here — one logical row per fixed-width slice of
// machine words — is the same one github.com/grailbio/bio/circular.Bitmap
// uses for its sliding BED-coordinate bitmaps. Unlike circular.Bitmap, a
// hard-location table is never scanned incrementally and never slides: every
// read and write touches the whole population, so there is no firstPos/
// lastPos bookkeeping or wraparound here, just plain word-indexed storage.
package bitmatrix

import (
	"math/bits"

	"github.com/grailbio/base/log"
)

const wordBits = 64

// BitMatrix is a fixed-size N x A matrix of single bits, packed into
// machine words, one word slice per row.
type BitMatrix struct {
	nRow, nCol  int
	wordsPerRow int
	bits        []uint64
}

// New returns a zero-filled nRow x nCol bit matrix.
func New(nRow, nCol int) BitMatrix {
	if nRow <= 0 || nCol <= 0 {
		log.Panicf("bitmatrix.New: nRow=%d, nCol=%d must both be positive", nRow, nCol)
	}
	wordsPerRow := (nCol + wordBits - 1) / wordBits
	return BitMatrix{
		nRow:        nRow,
		nCol:        nCol,
		wordsPerRow: wordsPerRow,
		bits:        make([]uint64, nRow*wordsPerRow),
	}
}

// Rows returns the number of rows (N).
func (b BitMatrix) Rows() int { return b.nRow }

// Cols returns the number of bits per row (A).
func (b BitMatrix) Cols() int { return b.nCol }

// Row returns the raw word slice backing logical row i, for direct filling
// by a bit source at construction time. The caller must zero any padding
// bits beyond Cols() in the final word itself: Set/Get never look at padding
// bits, but HammingDistance compares whole words without masking, so padding
// bits left set in a row are counted in its distances.
func (b BitMatrix) Row(i int) []uint64 {
	b.checkRow(i)
	base := i * b.wordsPerRow
	return b.bits[base : base+b.wordsPerRow]
}

// Set sets bit (row, col) to 1.
func (b BitMatrix) Set(row, col int) {
	b.checkRow(row)
	b.checkCol(col)
	idx := row*b.wordsPerRow + col/wordBits
	b.bits[idx] |= uint64(1) << uint(col%wordBits)
}

// Get returns the value of bit (row, col).
func (b BitMatrix) Get(row, col int) int {
	b.checkRow(row)
	b.checkCol(col)
	idx := row*b.wordsPerRow + col/wordBits
	if b.bits[idx]&(uint64(1)<<uint(col%wordBits)) != 0 {
		return 1
	}
	return 0
}

// HammingDistance returns the Hamming distance between row i and a
// caller-supplied query, packed the same way as a row (len(query) ==
// wordsPerRow(Cols())). The caller is responsible for ensuring any padding
// bits in query's final word are zero; rows produced by New/Set always have
// clean padding, so a query built the same way is automatically compatible.
func (b BitMatrix) HammingDistance(i int, query []uint64) int {
	b.checkRow(i)
	if len(query) != b.wordsPerRow {
		log.Panicf("bitmatrix.HammingDistance: len(query)=%d, want %d", len(query), b.wordsPerRow)
	}
	row := b.Row(i)
	dist := 0
	for w := 0; w < b.wordsPerRow; w++ {
		dist += bits.OnesCount64(row[w] ^ query[w])
	}
	return dist
}

// WordsPerRow returns the number of uint64 words used to store one row; this
// is also the length a caller must use for query words passed to
// HammingDistance or PackBits.
func (b BitMatrix) WordsPerRow() int { return b.wordsPerRow }

// PackBits packs a length-Cols() sequence of {0,1} values into a
// WordsPerRow()-length []uint64, suitable for passing to HammingDistance.
// It panics if len(vals) != Cols().
func (b BitMatrix) PackBits(vals []int) []uint64 {
	if len(vals) != b.nCol {
		log.Panicf("bitmatrix.PackBits: len(vals)=%d, want %d", len(vals), b.nCol)
	}
	words := make([]uint64, b.wordsPerRow)
	for i, v := range vals {
		if v == 1 {
			words[i/wordBits] |= uint64(1) << uint(i%wordBits)
		}
	}
	return words
}

func (b BitMatrix) checkRow(row int) {
	if row < 0 || row >= b.nRow {
		log.Panicf("bitmatrix: row index %d out of range [0, %d)", row, b.nRow)
	}
}

func (b BitMatrix) checkCol(col int) {
	if col < 0 || col >= b.nCol {
		log.Panicf("bitmatrix: column index %d out of range [0, %d)", col, b.nCol)
	}
}
