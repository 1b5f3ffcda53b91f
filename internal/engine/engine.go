// Package engine implements the move engine and blocked-player
// predicate described in spec.md §4.4/§4.5. Both are pure functions
// over a BoardView so the same logic runs against a plain in-memory
// board in tests and against the shared-memory segment in production.
package engine

import "github.com/chompchamps/arbiter/internal/wire"

// BoardView is the minimal surface the move engine and blocked
// detector need. Implementations are not required to be concurrency
// safe on their own: callers apply it only while already holding the
// writer lock (for ApplyMove) or a reader lock (for IsBlocked).
type BoardView interface {
	Width() int
	Height() int
	Cell(x, y int) int32
	SetCell(x, y int, v int32)
	PlayerPos(i int) (x, y int)
	SetPlayerPos(i int, x, y int)
	AddScore(i int, delta int32)
	IncValidMoves(i int)
	IncInvalidMoves(i int)
}

func inBounds(b BoardView, x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

// ApplyMove validates and applies a direction octet for player i
// against the board, per spec.md §4.4. It must only be invoked on a
// non-blocked player, inside the writer critical section.
func ApplyMove(b BoardView, i int, octet byte) {
	dx, dy, ok := wire.Delta(octet)
	if !ok {
		b.IncInvalidMoves(i)
		return
	}

	x, y := b.PlayerPos(i)
	nx, ny := x+dx, y+dy
	if !inBounds(b, nx, ny) {
		b.IncInvalidMoves(i)
		return
	}

	v := b.Cell(nx, ny)
	if wire.IsCaptured(v) {
		b.IncInvalidMoves(i)
		return
	}

	b.IncValidMoves(i)
	b.AddScore(i, v)
	b.SetPlayerPos(i, nx, ny)
	b.SetCell(nx, ny, wire.EncodeCapture(i))
}

// IsBlocked reports whether player i has no legal destination among
// its eight neighbors, per spec.md §4.5.
func IsBlocked(b BoardView, i int) bool {
	x, y := b.PlayerPos(i)
	for octet := byte(0); octet <= byte(wire.MaxValidDirection); octet++ {
		dx, dy, _ := wire.Delta(octet)
		nx, ny := x+dx, y+dy
		if inBounds(b, nx, ny) && !wire.IsCaptured(b.Cell(nx, ny)) {
			return false
		}
	}
	return true
}
