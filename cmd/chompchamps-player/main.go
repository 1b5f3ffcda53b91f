// Command chompchamps-player is the greedy reference player (spec.md
// §6, SPEC_FULL.md §3.9): each turn it reads the board under the
// reader protocol and moves toward the highest-reward reachable
// neighbor, breaking ties by the lowest direction code.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chompchamps/arbiter/internal/playerclient"
	"github.com/chompchamps/arbiter/internal/wire"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}
	width, err1 := strconv.Atoi(os.Args[1])
	height, err2 := strconv.Atoi(os.Args[2])
	if err1 != nil || err2 != nil {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}

	c, err := playerclient.Attach(width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-player: attach failed: %v\n", err)
		os.Exit(1)
	}

	for {
		if err := c.WaitTurn(); err != nil {
			return
		}

		snap, err := c.Read()
		if err != nil {
			return
		}
		if snap.GameOver {
			return
		}

		if err := playerclient.SubmitMove(chooseMove(snap)); err != nil {
			return
		}
	}
}

// chooseMove picks the reachable neighbor with the highest positive
// reward, ties broken by lowest direction code, and falls back to the
// first in-bounds-but-captured or out-of-bounds direction (a
// deliberate invalid move) if nothing is capturable.
func chooseMove(snap playerclient.Snapshot) byte {
	best := -1
	bestReward := int32(0)
	fallback := byte(0)
	haveFallback := false

	for d := byte(0); d <= byte(wire.MaxValidDirection); d++ {
		dx, dy, _ := wire.Delta(d)
		v, ok := snap.At(snap.X+dx, snap.Y+dy)
		if !ok || wire.IsCaptured(v) {
			if !haveFallback {
				fallback = d
				haveFallback = true
			}
			continue
		}
		if best == -1 || v > bestReward {
			best = int(d)
			bestReward = v
		}
	}

	if best != -1 {
		return byte(best)
	}
	if haveFallback {
		return fallback
	}
	return byte(wire.MaxValidDirection) + 1 // no neighbor at all: contractually invalid
}
