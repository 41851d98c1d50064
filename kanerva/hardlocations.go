package kanerva

import "github.com/grailbio/kanervasdm/bitmatrix"

// newHardLocationTable allocates an N x A bit matrix and fills every bit
// with an independent Bernoulli(1/2) draw from a bitSource keyed by seed.
// The table is a pure function of (numLocations, addressDimension, seed):
// two calls with the same three values produce byte-identical tables.
func newHardLocationTable(numLocations, addressDimension int, seed uint64) bitmatrix.BitMatrix {
	table := bitmatrix.New(numLocations, addressDimension)
	src := newBitSource(seed)

	wordsPerRow := table.WordsPerRow()
	lastWordBits := addressDimension % 64
	lastWordMask := ^uint64(0)
	if lastWordBits != 0 {
		lastWordMask = (uint64(1) << uint(lastWordBits)) - 1
	}

	for i := 0; i < numLocations; i++ {
		row := table.Row(i)
		for w := 0; w < wordsPerRow; w++ {
			word := src.nextWord()
			if w == wordsPerRow-1 {
				word &= lastWordMask
			}
			row[w] = word
		}
	}
	return table
}
