package arbiter

import (
	"math/rand"
	"path/filepath"

	"github.com/chompchamps/arbiter/internal/wire"
)

// initBoard fills every cell with a reward in 1..9 using the configured
// seed, then places each player on a distinct cell, immediately marking
// that cell captured by that player (spec.md invariant 1; the reward
// that was there is not scored — invariant 3 excludes the initial cell).
func initBoard(seg boardSegment, playerCount int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	w, h := seg.Width(), seg.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			seg.SetCell(x, y, int32(1+rng.Intn(9)))
		}
	}

	placed := make(map[[2]int]bool, playerCount)
	for i := 0; i < playerCount; i++ {
		var x, y int
		for {
			x, y = rng.Intn(w), rng.Intn(h)
			if !placed[[2]int{x, y}] {
				break
			}
		}
		placed[[2]int{x, y}] = true
		seg.SetPlayerPos(i, x, y)
		seg.SetCell(x, y, wire.EncodeCapture(i))
	}
}

// playerDisplayName derives a bounded display name (spec.md §3: at most
// 15 UTF-8 bytes) from a player binary's path.
func playerDisplayName(path string) string {
	name := filepath.Base(path)
	if len(name) > 15 {
		name = name[:15]
	}
	return name
}

// boardSegment is the subset of boardshm.Segment that board
// initialization needs, kept as an interface so tests can exercise
// initBoard without real shared memory.
type boardSegment interface {
	Width() int
	Height() int
	SetCell(x, y int, v int32)
	SetPlayerPos(i, x, y int)
}
