package shmfile

import "testing"

func TestPath(t *testing.T) {
	got := Path("chompchamps_board")
	want := "/dev/shm/chompchamps_board"
	if got != want {
		t.Errorf("Path(%q) = %q, want %q", "chompchamps_board", got, want)
	}
}
