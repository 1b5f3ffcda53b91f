package boardshm

import "testing"

func TestSize(t *testing.T) {
	want := cellsOffset + 10*20*4
	if got := Size(10, 20); got != want {
		t.Errorf("Size(10, 20) = %d, want %d", got, want)
	}
}

func TestPlayerRecordOffsetsDontOverlap(t *testing.T) {
	offsets := []int{recOffName, recOffScore, recOffValidMoves, recOffInvalidMoves, recOffX, recOffY, recOffPID, recOffBlocked}
	for i, a := range offsets {
		for j, b := range offsets {
			if i == j {
				continue
			}
			if a == b {
				t.Fatalf("record offsets %d and %d collide at byte %d", i, j, a)
			}
		}
	}
	if recOffBlocked+1 > recordSize {
		t.Errorf("recOffBlocked (%d) doesn't fit within recordSize (%d)", recOffBlocked, recordSize)
	}
}

func TestHeaderOffsetsCoverAllPlayerRecords(t *testing.T) {
	want := hdrOffPlayers + MaxPlayers*recordSize
	if hdrOffGameOver != want {
		t.Errorf("hdrOffGameOver = %d, want %d (after all %d player records)", hdrOffGameOver, want, MaxPlayers)
	}
}
