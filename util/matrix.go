// Package util provides small numeric helpers shared by the packages that
// make up the Kanerva SDM engine.
package util

import (
	"encoding/binary"
	"fmt"
	"hash"
	"strconv"
	"strings"
)

// Matrix is a row-major N x M matrix of signed 32-bit counters. A 32-bit
// counter is ample for the write volumes an SDM engine sees in practice: a
// cell's magnitude can never exceed the number of writes whose active set
// included its row, and a signed 32-bit counter accommodates billions of
// writes before it would need to be widened.
type Matrix struct {
	nRow, nCol int
	data       []int32
}

// NewMatrix returns a zero-initialized n x m matrix.
func NewMatrix(n, m int) Matrix {
	return Matrix{
		nRow: n,
		nCol: m,
		data: make([]int32, n*m),
	}
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.nRow }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.nCol }

// AccumulateRow adds +1 to cell (row, j) for every j where bits[j] == 1, and
// -1 for every j where bits[j] == 0. It panics if len(bits) != m.Cols() or
// row is out of range; callers are expected to have already validated bits
// against the engine's dimension before calling this.
func (m Matrix) AccumulateRow(row int, bits []int) {
	if len(bits) != m.nCol {
		panic(fmt.Sprintf("AccumulateRow: len(bits)=%d, want %d", len(bits), m.nCol))
	}
	base := row * m.nCol
	for j, b := range bits {
		if b == 1 {
			m.data[base+j]++
		} else {
			m.data[base+j]--
		}
	}
}

// ColumnSums returns, for every column j, the sum of m.data[i][j] over
// i in rows. The order of rows is irrelevant; only the set matters.
func (m Matrix) ColumnSums(rows []int) []int64 {
	sums := make([]int64, m.nCol)
	for _, row := range rows {
		base := row * m.nCol
		for j := 0; j < m.nCol; j++ {
			sums[j] += int64(m.data[base+j])
		}
	}
	return sums
}

// Reset zeros every counter in the matrix.
func (m Matrix) Reset() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Checksum feeds every counter, in row-major order, through h and returns
// h.Sum64(). Two matrices with identical contents produce the same checksum
// regardless of the path taken to reach that content, which makes this
// useful for a cheap equality probe between two engines built from the same
// seed and write history without comparing the full counter slice directly.
func (m Matrix) Checksum(h hash.Hash64) uint64 {
	h.Reset()
	var buf [4]byte
	for _, d := range m.data {
		binary.LittleEndian.PutUint32(buf[:], uint32(d))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// String returns a human-readable dump of the matrix, aligned into columns.
// Only intended for small matrices (tests, debugging); not used on the hot
// read/write path.
func (m Matrix) String() (r string) {
	maxLength := 0
	for _, d := range m.data {
		if l := len(strconv.Itoa(int(d))); l > maxLength {
			maxLength = l
		}
	}

	lines := []string{"\n"}
	for i := 0; i < m.nRow; i++ {
		var parts []string
		for j := 0; j < m.nCol; j++ {
			parts = append(parts, fmt.Sprintf("%*s", maxLength, strconv.Itoa(int(m.data[i*m.nCol+j]))))
		}
		lines = append(lines, strings.Join(parts, " | "))
	}
	return strings.Join(lines, "\n")
}
