// Package playerclient provides the attach and read-snapshot helpers
// shared by every player binary (spec.md §4.3, §6): read-only board
// attach, reader-protocol wrapping, and the turn-signal wait.
package playerclient

import (
	"fmt"
	"os"
	"time"

	"github.com/chompchamps/arbiter/internal/boardshm"
	"github.com/chompchamps/arbiter/internal/syncshm"
)

// Client bundles an attached read-only board view with the sync
// segment needed to wait for turns and to read under the reader lock.
type Client struct {
	Board *boardshm.Segment
	sync  *syncshm.Set
	index int
}

// Attach maps the board (read-only) and sync segments at the
// width/height the arbiter passed on argv, then discovers this
// process's own player index (see discoverIndex).
func Attach(width, height int) (*Client, error) {
	board, err := boardshm.Attach(width, height, false)
	if err != nil {
		return nil, fmt.Errorf("attach board: %w", err)
	}
	sync, err := syncshm.Attach()
	if err != nil {
		return nil, fmt.Errorf("attach sync: %w", err)
	}
	idx, err := discoverIndex(board, sync, os.Getpid())
	if err != nil {
		return nil, err
	}
	return &Client{Board: board, sync: sync, index: idx}, nil
}

// discoverIndex finds this process's player index by scanning the
// board's player records for a PID match. Player binaries are spawned
// with only width/height on argv (spec.md §6's contractual argv), so a
// player cannot be told its index directly; the arbiter writes each
// child's PID into its record immediately after spawning (spec.md §4.8).
// Each scan attempt is taken under its own reader-section acquisition,
// released before sleeping, so a slow-to-spawn sibling never holds the
// reader lock open across the whole poll and starve the arbiter's
// writer side.
func discoverIndex(board *boardshm.Segment, sync *syncshm.Set, pid int) (int, error) {
	deadline := time.Now().Add(5 * time.Second)
	n := board.PlayerCount()
	for {
		idx, found, err := scanForPID(board, sync, n, pid)
		if err != nil {
			return 0, err
		}
		if found {
			return idx, nil
		}
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("no player record claims pid %d after %s", pid, 5*time.Second)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// scanForPID takes one pass over the player records under the reader
// lock, releasing it before discoverIndex's caller sleeps and retries.
func scanForPID(board *boardshm.Segment, sync *syncshm.Set, n, pid int) (int, bool, error) {
	if err := sync.EnterReader(); err != nil {
		return 0, false, fmt.Errorf("enter reader section: %w", err)
	}
	defer sync.ExitReader()

	for i := 0; i < n; i++ {
		if int(board.PID(i)) == pid {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// WaitTurn blocks until the arbiter authorizes this player's next move
// (spec.md §5's player_move[i] semaphore).
func (c *Client) WaitTurn() error {
	return c.sync.WaitPlayerMove(c.index)
}

// WaitTurnTimeout is the bounded variant, used by players that want to
// give up after timeout rather than block until the arbiter next posts
// their turn signal (it returns syncshm.ErrTimeout when the wait expires).
func (c *Client) WaitTurnTimeout(timeout time.Duration) error {
	return c.sync.WaitPlayerMoveTimeout(c.index, timeout)
}

// Snapshot is an immutable copy of everything a player needs to decide
// its next move, taken under the reader lock so it is internally
// consistent (spec.md §5: readers never observe a torn write).
type Snapshot struct {
	Width, Height int
	Cells         []int32 // row-major, len == Width*Height
	X, Y          int
	GameOver      bool
}

// Read takes a consistent snapshot of the board under the
// reader-protocol (spec.md §4.3 step 2: "read the board under the
// reader lock before deciding a move").
func (c *Client) Read() (Snapshot, error) {
	if err := c.sync.EnterReader(); err != nil {
		return Snapshot{}, fmt.Errorf("enter reader section: %w", err)
	}
	defer c.sync.ExitReader()

	w, h := c.Board.Width(), c.Board.Height()
	snap := Snapshot{Width: w, Height: h, Cells: make([]int32, w*h), GameOver: c.Board.GameOver()}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			snap.Cells[y*w+x] = c.Board.Cell(x, y)
		}
	}
	snap.X, snap.Y = c.Board.PlayerPos(c.index)
	return snap, nil
}

// At returns the cell value at (x, y) within a snapshot, or a captured
// sentinel if out of bounds, since callers scan neighbors without first
// bounds-checking (spec.md §4.4's direction table can point off-board).
func (s Snapshot) At(x, y int) (int32, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0, false
	}
	return s.Cells[y*s.Width+x], true
}

// SubmitMove writes the chosen direction octet to stdout, the
// player-to-arbiter channel (spec.md §4.3: one byte per move, no
// framing).
func SubmitMove(octet byte) error {
	_, err := os.Stdout.Write([]byte{octet})
	return err
}
