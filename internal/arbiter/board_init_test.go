package arbiter

import "testing"

type fakeBoard struct {
	w, h  int
	cells map[[2]int]int32
	pos   [][2]int
}

func newFakeBoard(w, h, players int) *fakeBoard {
	return &fakeBoard{w: w, h: h, cells: make(map[[2]int]int32), pos: make([][2]int, players)}
}

func (f *fakeBoard) Width() int  { return f.w }
func (f *fakeBoard) Height() int { return f.h }
func (f *fakeBoard) SetCell(x, y int, v int32) {
	f.cells[[2]int{x, y}] = v
}
func (f *fakeBoard) SetPlayerPos(i, x, y int) {
	f.pos[i] = [2]int{x, y}
}

func TestInitBoard_PlayersOnDistinctCaptureCells(t *testing.T) {
	b := newFakeBoard(10, 10, 4)
	initBoard(b, 4, 42)

	seen := map[[2]int]bool{}
	for i, p := range b.pos {
		if seen[p] {
			t.Fatalf("player %d shares a starting cell with another player: %v", i, p)
		}
		seen[p] = true
		v, ok := b.cells[p]
		if !ok {
			t.Fatalf("player %d's cell %v was never written", i, p)
		}
		if v != int32(-i) {
			t.Errorf("player %d's starting cell = %d, want %d (capture encoding)", i, v, -i)
		}
	}
}

func TestInitBoard_Deterministic(t *testing.T) {
	a := newFakeBoard(10, 10, 3)
	b := newFakeBoard(10, 10, 3)
	initBoard(a, 3, 7)
	initBoard(b, 3, 7)
	for i := range a.pos {
		if a.pos[i] != b.pos[i] {
			t.Errorf("player %d placed differently across runs with the same seed: %v vs %v", i, a.pos[i], b.pos[i])
		}
	}
}

func TestPlayerDisplayName_Truncates(t *testing.T) {
	got := playerDisplayName("/usr/local/bin/a-very-long-player-binary-name")
	if len(got) > 15 {
		t.Errorf("playerDisplayName returned %q (%d bytes), want <= 15", got, len(got))
	}
}
