package main

import (
	"testing"

	"github.com/chompchamps/arbiter/internal/playerclient"
	"github.com/chompchamps/arbiter/internal/wire"
)

func snapshot(w, h int, x, y int, cells []int32) playerclient.Snapshot {
	return playerclient.Snapshot{Width: w, Height: h, X: x, Y: y, Cells: cells}
}

func TestChooseMove_PicksHighestReward(t *testing.T) {
	// 3x3 board, player at center; Up=1, Right=9, rest captured/zero.
	cells := make([]int32, 9)
	for i := range cells {
		cells[i] = wire.EncodeCapture(1) // captured by someone else by default
	}
	cells[1*3+1] = wire.EncodeCapture(0) // player's own cell, irrelevant
	cells[0*3+1] = 1                     // Up
	cells[1*3+2] = 9                     // Right

	snap := snapshot(3, 3, 1, 1, cells)
	got := chooseMove(snap)
	if got != byte(wire.Right) {
		t.Errorf("chooseMove = %d, want %d (Right, highest reward)", got, wire.Right)
	}
}

func TestChooseMove_TiesBreakByLowestDirection(t *testing.T) {
	cells := make([]int32, 9)
	for i := range cells {
		cells[i] = wire.EncodeCapture(1)
	}
	cells[0*3+1] = 5 // Up
	cells[1*3+2] = 5 // Right, same reward

	snap := snapshot(3, 3, 1, 1, cells)
	got := chooseMove(snap)
	if got != byte(wire.Up) {
		t.Errorf("chooseMove = %d, want %d (Up, lowest direction on tie)", got, wire.Up)
	}
}

func TestChooseMove_FallsBackToInvalidWhenFullyBlocked(t *testing.T) {
	cells := make([]int32, 9)
	for i := range cells {
		cells[i] = wire.EncodeCapture(1)
	}
	snap := snapshot(3, 3, 1, 1, cells)
	got := chooseMove(snap)
	if got != byte(wire.Up) {
		t.Errorf("chooseMove = %d, want %d (Up, the first direction into a captured cell: a deliberate invalid move)", got, wire.Up)
	}
}

func TestChooseMove_CornerFallsBackToBlockedDirection(t *testing.T) {
	cells := make([]int32, 9)
	for i := range cells {
		cells[i] = wire.EncodeCapture(1)
	}
	snap := snapshot(3, 3, 0, 0, cells) // top-left corner, every neighbor off-board or captured
	got := chooseMove(snap)

	dx, dy, ok := wire.Delta(got)
	if ok {
		if v, inBounds := snap.At(snap.X+dx, snap.Y+dy); inBounds && !wire.IsCaptured(v) {
			t.Errorf("chooseMove = %d targets an uncaptured in-bounds cell, want a deliberately blocked move", got)
		}
	}
}
