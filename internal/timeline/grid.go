// Package timeline discretizes a day into equal fixed-size blocks.
//
// Blocks are 1-based: block 1 covers [0, BlockMinutes) and block N covers
// the last BlockMinutes of the day. All placement arithmetic happens in
// block units; minutes are only re-derived from block positions for output.
package timeline

import (
	"errors"
	"fmt"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 1440

// CanonicalBlockMinutes is the default block size.
const CanonicalBlockMinutes = 15

var ErrInvalidBlockSize = errors.New("block size must be a positive divisor of 1440")

// Grid describes one discretized day.
type Grid struct {
	blockMinutes int
	blocks       int
}

// NewGrid returns a grid with the given block size in minutes.
func NewGrid(blockMinutes int) (Grid, error) {
	if blockMinutes <= 0 || MinutesPerDay%blockMinutes != 0 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, blockMinutes)
	}
	return Grid{blockMinutes: blockMinutes, blocks: MinutesPerDay / blockMinutes}, nil
}

// Canonical returns the 15-minute, 96-block grid.
func Canonical() Grid {
	return Grid{blockMinutes: CanonicalBlockMinutes, blocks: MinutesPerDay / CanonicalBlockMinutes}
}

// BlockMinutes returns the size of one block in minutes.
func (g Grid) BlockMinutes() int { return g.blockMinutes }

// Blocks returns N, the number of blocks in the day.
func (g Grid) Blocks() int { return g.blocks }

// MinutesToBlock returns the 1-based block containing minute m.
// Minute 1440 maps to N+1, the first block past the end of the day.
func (g Grid) MinutesToBlock(m int) int {
	if m < 0 {
		panic(fmt.Sprintf("timeline: negative minute %d", m))
	}
	return m/g.blockMinutes + 1
}

// BlockToMinutes returns the start minute of a 1-based block.
// Block N+1 maps to 1440.
func (g Grid) BlockToMinutes(block int) int {
	if block < 1 {
		panic(fmt.Sprintf("timeline: block %d is not 1-based", block))
	}
	return (block - 1) * g.blockMinutes
}

// DurationToBlocks returns ceil(minutes / BlockMinutes). It does not
// overflow for any non-negative int.
func (g Grid) DurationToBlocks(minutes int) int {
	if minutes < 0 {
		panic(fmt.Sprintf("timeline: negative duration %d", minutes))
	}
	n := minutes / g.blockMinutes
	if minutes%g.blockMinutes != 0 {
		n++
	}
	return n
}

// EndBlock returns the first block after the day, N+1.
func (g Grid) EndBlock() int { return g.blocks + 1 }
