package winner

import (
	"reflect"
	"testing"
)

func TestResolve_SingleWinner(t *testing.T) {
	records := []Record{
		{Index: 0, Score: 10, ValidMoves: 5, InvalidMoves: 1},
		{Index: 1, Score: 20, ValidMoves: 8, InvalidMoves: 0},
	}
	got := Resolve(records)
	want := []int{1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

// Scenario 7 (spec.md §8): equal score, tiebreak on fewer valid moves,
// then on fewer invalid moves, then both win.
func TestResolve_TiebreakOnValidMoves(t *testing.T) {
	records := []Record{
		{Index: 0, Score: 15, ValidMoves: 9, InvalidMoves: 2},
		{Index: 1, Score: 15, ValidMoves: 6, InvalidMoves: 3},
	}
	got := Resolve(records)
	want := []int{1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolve_TiebreakOnInvalidMoves(t *testing.T) {
	records := []Record{
		{Index: 0, Score: 15, ValidMoves: 6, InvalidMoves: 4},
		{Index: 1, Score: 15, ValidMoves: 6, InvalidMoves: 1},
	}
	got := Resolve(records)
	want := []int{1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolve_FullTieProducesMultipleWinners(t *testing.T) {
	records := []Record{
		{Index: 0, Score: 15, ValidMoves: 6, InvalidMoves: 1},
		{Index: 1, Score: 15, ValidMoves: 6, InvalidMoves: 1},
		{Index: 2, Score: 5, ValidMoves: 1, InvalidMoves: 0},
	}
	got := Resolve(records)
	want := []int{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolve_Empty(t *testing.T) {
	if got := Resolve(nil); got != nil {
		t.Errorf("Resolve(nil) = %v, want nil", got)
	}
}
