// Package viewclient provides the attach and handshake loop shared by
// every view binary (spec.md §4.3, §6): read-only board attach and the
// view_update/view_done ping-pong.
package viewclient

import (
	"fmt"

	"github.com/chompchamps/arbiter/internal/boardshm"
	"github.com/chompchamps/arbiter/internal/syncshm"
)

// Client bundles an attached read-only board view with the sync
// segment needed to perform the render handshake.
type Client struct {
	Board *boardshm.Segment
	sync  *syncshm.Set
}

// Attach maps the board (read-only) and sync segments at the
// width/height the arbiter passed on argv.
func Attach(width, height int) (*Client, error) {
	board, err := boardshm.Attach(width, height, false)
	if err != nil {
		return nil, fmt.Errorf("attach board: %w", err)
	}
	sync, err := syncshm.Attach()
	if err != nil {
		return nil, fmt.Errorf("attach sync: %w", err)
	}
	return &Client{Board: board, sync: sync}, nil
}

// Snapshot is a reader-locked copy of the whole board plus every
// player's record, enough to render one frame.
type Snapshot struct {
	Width, Height int
	Cells         []int32
	Players       []PlayerRecord
	GameOver      bool
}

// PlayerRecord is the subset of a player's record a view renders.
type PlayerRecord struct {
	Name         string
	X, Y         int
	Score        uint32
	ValidMoves   uint32
	InvalidMoves uint32
	Blocked      bool
}

// Run drives the view_update/view_done ping-pong for as long as the
// game runs: block for view_update, invoke render with a fresh
// snapshot, post view_done. It returns when render returns a non-nil
// error or the board's game_over flag is observed set, matching
// spec.md §4.6's final broadcast (the arbiter posts view_update one
// last time after setting game_over so the view can draw the final
// frame before exiting).
func (c *Client) Run(render func(Snapshot) error) error {
	for {
		if err := c.sync.WaitViewUpdate(); err != nil {
			return fmt.Errorf("wait view_update: %w", err)
		}

		snap, err := c.read()
		if err != nil {
			return err
		}

		renderErr := render(snap)

		if err := c.sync.PostViewDone(); err != nil {
			return fmt.Errorf("post view_done: %w", err)
		}

		if renderErr != nil {
			return renderErr
		}
		if snap.GameOver {
			return nil
		}
	}
}

func (c *Client) read() (Snapshot, error) {
	if err := c.sync.EnterReader(); err != nil {
		return Snapshot{}, fmt.Errorf("enter reader section: %w", err)
	}
	defer c.sync.ExitReader()

	w, h := c.Board.Width(), c.Board.Height()
	n := c.Board.PlayerCount()
	snap := Snapshot{
		Width:    w,
		Height:   h,
		Cells:    make([]int32, w*h),
		Players:  make([]PlayerRecord, n),
		GameOver: c.Board.GameOver(),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			snap.Cells[y*w+x] = c.Board.Cell(x, y)
		}
	}
	for i := 0; i < n; i++ {
		x, y := c.Board.PlayerPos(i)
		snap.Players[i] = PlayerRecord{
			Name:         c.Board.Name(i),
			X:            x,
			Y:            y,
			Score:        c.Board.Score(i),
			ValidMoves:   c.Board.ValidMoves(i),
			InvalidMoves: c.Board.InvalidMoves(i),
			Blocked:      c.Board.Blocked(i),
		}
	}
	return snap, nil
}
