package arbiter

import "testing"

func TestSelectRoundRobin_StartsAtStartIndex(t *testing.T) {
	ready := []bool{true, true, true}
	idx, ok := selectRoundRobin(3, 1, ready)
	if !ok || idx != 1 {
		t.Fatalf("selectRoundRobin = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestSelectRoundRobin_SkipsNotReadyAndWraps(t *testing.T) {
	ready := []bool{true, false, false}
	idx, ok := selectRoundRobin(3, 1, ready)
	if !ok || idx != 0 {
		t.Fatalf("selectRoundRobin = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestSelectRoundRobin_NoneReady(t *testing.T) {
	ready := []bool{false, false, false}
	_, ok := selectRoundRobin(3, 0, ready)
	if ok {
		t.Fatalf("selectRoundRobin found a ready player when none were ready")
	}
}

func TestSelectRoundRobin_FairnessOverManyTurns(t *testing.T) {
	// If every player is always ready, round-robin must visit each
	// player exactly once per full cycle — no starvation (spec.md §4.6).
	ready := []bool{true, true, true, true}
	start := 0
	counts := make([]int, 4)
	for turn := 0; turn < 400; turn++ {
		idx, ok := selectRoundRobin(4, start, ready)
		if !ok {
			t.Fatalf("turn %d: expected a ready player", turn)
		}
		counts[idx]++
		start = nextStartIndex(start, 4)
	}
	for i, c := range counts {
		if c != 100 {
			t.Errorf("player %d served %d times, want 100", i, c)
		}
	}
}

func TestNextStartIndex_Wraps(t *testing.T) {
	if got := nextStartIndex(2, 3); got != 0 {
		t.Errorf("nextStartIndex(2, 3) = %d, want 0", got)
	}
}
