package engine

import "testing"

// memBoard is a plain in-memory BoardView used only by tests.
type memBoard struct {
	w, h          int
	cells         []int32
	x, y          []int
	score         []int32
	valid, invalid []int
}

func newMemBoard(w, h, players int) *memBoard {
	return &memBoard{
		w: w, h: h,
		cells:   make([]int32, w*h),
		x:       make([]int, players),
		y:       make([]int, players),
		score:   make([]int32, players),
		valid:   make([]int, players),
		invalid: make([]int, players),
	}
}

func (m *memBoard) Width() int  { return m.w }
func (m *memBoard) Height() int { return m.h }
func (m *memBoard) Cell(x, y int) int32 {
	return m.cells[y*m.w+x]
}
func (m *memBoard) SetCell(x, y int, v int32) {
	m.cells[y*m.w+x] = v
}
func (m *memBoard) PlayerPos(i int) (int, int) { return m.x[i], m.y[i] }
func (m *memBoard) SetPlayerPos(i, x, y int)    { m.x[i], m.y[i] = x, y }
func (m *memBoard) AddScore(i int, delta int32) { m.score[i] += delta }
func (m *memBoard) IncValidMoves(i int)         { m.valid[i]++ }
func (m *memBoard) IncInvalidMoves(i int)       { m.invalid[i]++ }

// Scenario 1 (spec.md §8): single-cell capture.
func TestApplyMove_SingleCellCapture(t *testing.T) {
	b := newMemBoard(10, 10, 1)
	b.SetPlayerPos(0, 5, 5)
	b.SetCell(6, 5, 7) // reward to the right

	ApplyMove(b, 0, 0x02) // right

	if got := b.score[0]; got != 7 {
		t.Errorf("score = %d, want 7", got)
	}
	x, y := b.PlayerPos(0)
	if x != 6 || y != 5 {
		t.Errorf("position = (%d,%d), want (6,5)", x, y)
	}
	if got := b.Cell(6, 5); got != 0 {
		t.Errorf("captured cell = %d, want 0 (captured by player 0)", got)
	}
	if b.valid[0] != 1 {
		t.Errorf("valid_moves = %d, want 1", b.valid[0])
	}
}

// Scenario 2: invalid out-of-bounds move.
func TestApplyMove_OutOfBounds(t *testing.T) {
	b := newMemBoard(10, 10, 1)
	b.SetPlayerPos(0, 0, 0)

	ApplyMove(b, 0, 0x06) // left, off the left edge

	if b.invalid[0] != 1 {
		t.Errorf("invalid_moves = %d, want 1", b.invalid[0])
	}
	x, y := b.PlayerPos(0)
	if x != 0 || y != 0 {
		t.Errorf("position changed to (%d,%d), want unchanged (0,0)", x, y)
	}
	if b.score[0] != 0 {
		t.Errorf("score = %d, want 0", b.score[0])
	}
}

// Scenario 3: direction over-range.
func TestApplyMove_DirectionOverRange(t *testing.T) {
	b := newMemBoard(10, 10, 1)
	b.SetPlayerPos(0, 5, 5)

	ApplyMove(b, 0, 0x09)

	if b.invalid[0] != 1 {
		t.Errorf("invalid_moves = %d, want 1", b.invalid[0])
	}
	if b.valid[0] != 0 {
		t.Errorf("valid_moves = %d, want 0", b.valid[0])
	}
}

func TestApplyMove_CapturedTargetIsInvalid(t *testing.T) {
	b := newMemBoard(10, 10, 2)
	b.SetPlayerPos(0, 5, 5)
	b.SetCell(6, 5, wire_neg(1)) // already captured by player 1

	ApplyMove(b, 0, 0x02)

	if b.invalid[0] != 1 {
		t.Errorf("invalid_moves = %d, want 1", b.invalid[0])
	}
}

func wire_neg(i int) int32 { return int32(-i) }

func TestIsBlocked(t *testing.T) {
	b := newMemBoard(3, 3, 1)
	b.SetPlayerPos(0, 1, 1)
	// Surround (1,1) entirely with captured cells.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			b.SetCell(x, y, 0)
		}
	}
	if !IsBlocked(b, 0) {
		t.Errorf("expected player to be blocked when fully surrounded by captured cells")
	}
}

func TestIsBlocked_EdgeOfBoardCountsAsBlocking(t *testing.T) {
	b := newMemBoard(10, 10, 1)
	b.SetPlayerPos(0, 0, 0)
	// All neighbors either out of bounds or captured.
	b.SetCell(1, 0, 0)
	b.SetCell(0, 1, 0)
	b.SetCell(1, 1, 0)
	if !IsBlocked(b, 0) {
		t.Errorf("expected player in a corner with all in-bounds neighbors captured to be blocked")
	}
}

func TestIsBlocked_OneOpenNeighborIsNotBlocked(t *testing.T) {
	b := newMemBoard(10, 10, 1)
	b.SetPlayerPos(0, 5, 5)
	for octet := byte(0); octet <= 7; octet++ {
		dx, dy, _ := wireDeltaForTest(octet)
		b.SetCell(5+dx, 5+dy, 0)
	}
	// Leave one neighbor open.
	b.SetCell(6, 5, 3)
	if IsBlocked(b, 0) {
		t.Errorf("expected player with one open neighbor to not be blocked")
	}
}

func wireDeltaForTest(octet byte) (int, int, bool) {
	// local mirror to avoid importing wire twice in the test table above
	dxs := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dys := [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
	if octet > 7 {
		return 0, 0, false
	}
	return dxs[octet], dys[octet], true
}
